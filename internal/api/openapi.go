package api

import (
	"github.com/JaimeStill/adscreen/internal/config"
	"github.com/JaimeStill/adscreen/pkg/openapi"
)

// NewSpec describes the API surface served under cfg.API.BasePath.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	spec.Components.AddSchemas(schemas())
	if cfg.Auth.Issuer != "" {
		spec.UseBearerAuth("ID token issued by " + cfg.Auth.Issuer)
	}

	id := openapi.PathParam("id", "Resource ID")
	errs := func(codes ...int) map[int]*openapi.Response {
		out := map[int]*openapi.Response{
			401: openapi.ResponseRef("Unauthorized"),
			403: openapi.ResponseRef("Forbidden"),
		}
		for _, c := range codes {
			switch c {
			case 400:
				out[c] = openapi.ResponseRef("BadRequest")
			case 404:
				out[c] = openapi.ResponseRef("NotFound")
			case 409:
				out[c] = openapi.ResponseRef("Conflict")
			case 413:
				out[c] = openapi.ResponseRef("TooLarge")
			case 502:
				out[c] = openapi.ResponseRef("BadGateway")
			case 503:
				out[c] = openapi.ResponseRef("Unavailable")
			}
		}
		return out
	}
	with := func(base map[int]*openapi.Response, code int, resp *openapi.Response) map[int]*openapi.Response {
		base[code] = resp
		return base
	}

	spec.Paths["/analyze"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Analyze an advertisement image",
			Description: "Runs the full screening pipeline within the request.",
			Tags:        []string{"Analysis"},
			RequestBody: submissionBody(),
			Responses:   with(errs(400, 413, 502, 503), 200, openapi.ResponseJSON("Stored analysis result", "AnalysisResult")),
		},
	}
	spec.Paths["/jobs"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Submit an analysis job",
			Tags:        []string{"Analysis"},
			RequestBody: submissionBody(),
			Responses:   with(errs(400, 413), 202, openapi.ResponseJSON("Queued job", "JobSubmitted")),
		},
	}
	spec.Paths["/jobs/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Poll an analysis job",
			Tags:       []string{"Analysis"},
			Parameters: []*openapi.Parameter{id},
			Responses:  with(errs(404), 200, openapi.ResponseJSON("Job status", "JobView")),
		},
	}
	spec.Paths["/analyses"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List analysis history",
			Tags:    []string{"History"},
			Parameters: []*openapi.Parameter{
				openapi.QueryParam("page", "integer", "Page number", false),
				openapi.QueryParam("page_size", "integer", "Results per page", false),
				openapi.QueryParam("search", "string", "Ad name search", false),
				openapi.QueryParam("sort", "string", "Sort fields", false),
				openapi.QueryParam("risk_level", "string", "low, medium, or high", false),
				openapi.QueryParam("analysis_source", "string", "ai or ocr", false),
				openapi.QueryParam("ad_name", "string", "Ad name contains", false),
				openapi.QueryParam("requested_by", "string", "Requester email", false),
				openapi.QueryParam("since", "string", "RFC 3339 lower bound on created_at", false),
				openapi.QueryParam("min_score", "integer", "Lower bound on pass_score", false),
			},
			Responses: with(errs(), 200, openapi.ResponsePage("Page of analysis results", "AnalysisResult")),
		},
	}
	spec.Paths["/analyses/search"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Search analysis history",
			Tags:        []string{"History"},
			RequestBody: openapi.RequestBodyJSON("PageRequest", true),
			Responses:   with(errs(400), 200, openapi.ResponsePage("Page of analysis results", "AnalysisResult")),
		},
	}
	spec.Paths["/analyses/metrics"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:   "Risk metrics over stored analyses",
			Tags:      []string{"History"},
			Responses: with(errs(), 200, openapi.ResponseJSON("Risk metrics", "AnalysisMetrics")),
		},
	}
	spec.Paths["/analyses/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get an analysis result",
			Tags:       []string{"History"},
			Parameters: []*openapi.Parameter{id},
			Responses:  with(errs(404), 200, openapi.ResponseJSON("Analysis result", "AnalysisResult")),
		},
	}
	spec.Paths["/files/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Download a stored image",
			Tags:       []string{"Files"},
			Parameters: []*openapi.Parameter{id, openapi.QueryParam("token", "string", "Signed download token", true)},
			Security:   []openapi.SecurityRequirement{},
			Responses: map[int]*openapi.Response{
				200: {Description: "Image bytes"},
				401: openapi.ResponseRef("Unauthorized"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/admin/phrases"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:   "List forbidden phrases",
			Tags:      []string{"Admin"},
			Responses: with(errs(), 200, openapi.ResponsePage("Page of phrases", "Phrase")),
		},
		Post: &openapi.Operation{
			Summary:     "Add a forbidden phrase",
			Tags:        []string{"Admin"},
			RequestBody: openapi.RequestBodyJSON("PhraseCommand", true),
			Responses:   with(errs(400, 409), 201, openapi.ResponseJSON("Created phrase", "Phrase")),
		},
	}
	spec.Paths["/admin/phrases/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a forbidden phrase",
			Tags:       []string{"Admin"},
			Parameters: []*openapi.Parameter{id},
			Responses:  with(errs(404), 200, openapi.ResponseJSON("Phrase", "Phrase")),
		},
		Put: &openapi.Operation{
			Summary:     "Update a forbidden phrase",
			Tags:        []string{"Admin"},
			Parameters:  []*openapi.Parameter{id},
			RequestBody: openapi.RequestBodyJSON("PhraseCommand", true),
			Responses:   with(errs(400, 404, 409), 200, openapi.ResponseJSON("Updated phrase", "Phrase")),
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a forbidden phrase",
			Tags:       []string{"Admin"},
			Parameters: []*openapi.Parameter{id},
			Responses:  with(errs(404), 204, &openapi.Response{Description: "Deleted"}),
		},
	}
	spec.Paths["/admin/references"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:   "List the legal reference catalog",
			Tags:      []string{"Admin"},
			Responses: with(errs(), 200, &openapi.Response{
				Description: "Reference entries",
				Content: map[string]*openapi.MediaType{
					"application/json": {Schema: &openapi.Schema{Type: "array", Items: openapi.SchemaRef("Reference")}},
				},
			}),
		},
	}
	spec.Paths["/admin/users"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:   "List users",
			Tags:      []string{"Admin"},
			Responses: with(errs(), 200, openapi.ResponsePage("Page of users", "User")),
		},
		Post: &openapi.Operation{
			Summary:     "Add a user",
			Tags:        []string{"Admin"},
			RequestBody: openapi.RequestBodyJSON("UserCommand", true),
			Responses:   with(errs(400, 409), 201, openapi.ResponseJSON("Created user", "User")),
		},
	}
	spec.Paths["/admin/users/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Get a user",
			Tags:       []string{"Admin"},
			Parameters: []*openapi.Parameter{id},
			Responses:  with(errs(404), 200, openapi.ResponseJSON("User", "User")),
		},
		Put: &openapi.Operation{
			Summary:     "Update a user's role or status",
			Tags:        []string{"Admin"},
			Parameters:  []*openapi.Parameter{id},
			RequestBody: openapi.RequestBodyJSON("UserCommand", true),
			Responses:   with(errs(400, 404), 200, openapi.ResponseJSON("Updated user", "User")),
		},
	}
	spec.Paths["/admin/settings"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:   "Get system settings",
			Tags:      []string{"Admin"},
			Responses: with(errs(), 200, openapi.ResponseJSON("Settings", "Settings")),
		},
		Put: &openapi.Operation{
			Summary:     "Update system settings",
			Tags:        []string{"Admin"},
			RequestBody: openapi.RequestBodyJSON("Settings", true),
			Responses:   with(errs(400), 200, openapi.ResponseJSON("Settings", "Settings")),
		},
	}
	spec.Paths["/admin/audit-logs"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:   "List audit log entries",
			Tags:      []string{"Admin"},
			Responses: with(errs(), 200, openapi.ResponsePage("Page of audit entries", "AuditEntry")),
		},
	}

	return spec
}

func submissionBody() *openapi.RequestBody {
	return &openapi.RequestBody{
		Required: true,
		Content: map[string]*openapi.MediaType{
			"application/json": {Schema: openapi.SchemaRef("Submission")},
			"multipart/form-data": {Schema: &openapi.Schema{
				Type:     "object",
				Required: []string{"ad_name", "image"},
				Properties: map[string]*openapi.Schema{
					"ad_name": {Type: "string"},
					"image":   {Type: "string", Format: "binary"},
				},
			}},
		},
	}
}

func schemas() map[string]*openapi.Schema {
	str := &openapi.Schema{Type: "string"}
	risk := &openapi.Schema{Type: "string", Enum: []any{"low", "medium", "high"}}

	return map[string]*openapi.Schema{
		"Submission": {
			Type:     "object",
			Required: []string{"ad_name", "image"},
			Properties: map[string]*openapi.Schema{
				"ad_name": str,
				"image":   {Type: "string", Description: "Data URI or base64 encoded image"},
			},
		},
		"JobSubmitted": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"job_id": {Type: "string", Format: "uuid"}},
		},
		"JobView": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"status": {Type: "string", Enum: []any{"queued", "running", "done", "failed"}},
				"result": openapi.SchemaRef("AnalysisResult"),
				"error":  str,
			},
		},
		"Finding": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"text":           str,
				"violation_type": str,
				"risk_level":     risk,
				"reference_id":   str,
				"rationale":      str,
			},
		},
		"OcrBox": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"x":          {Type: "number"},
				"y":          {Type: "number"},
				"w":          {Type: "number"},
				"h":          {Type: "number"},
				"text":       str,
				"risk_level": {Type: "string", Enum: []any{"none", "low", "medium", "high"}},
			},
		},
		"Reference": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":      str,
				"title":   str,
				"clause":  str,
				"excerpt": str,
			},
		},
		"AnalysisResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"ad_name":         str,
				"created_at":      {Type: "string", Format: "date-time"},
				"pass_score":      {Type: "integer"},
				"risk_level":      risk,
				"analysis_source": {Type: "string", Enum: []any{"ai", "ocr"}},
				"ai_error":        str,
				"status":          str,
				"image_url":       str,
				"ocr_full_text":   str,
				"has_ocr_boxes":   {Type: "boolean"},
				"ocr_boxes":       {Type: "array", Items: openapi.SchemaRef("OcrBox")},
				"findings":        {Type: "array", Items: openapi.SchemaRef("Finding")},
				"ai_rationale":    str,
				"references":      {Type: "array", Items: openapi.SchemaRef("Reference")},
				"requested_by":    str,
			},
		},
		"AnalysisMetrics": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"total_analyses":    {Type: "integer"},
				"high_risk_count":   {Type: "integer"},
				"medium_risk_count": {Type: "integer"},
				"low_risk_count":    {Type: "integer"},
				"risk_distribution": {Type: "array", Items: &openapi.Schema{Type: "object"}},
			},
		},
		"Phrase": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":             {Type: "string", Format: "uuid"},
				"phrase":         str,
				"risk_level":     risk,
				"violation_type": str,
				"reference_id":   str,
				"updated_at":     {Type: "string", Format: "date-time"},
			},
		},
		"PhraseCommand": {
			Type:     "object",
			Required: []string{"phrase", "risk_level"},
			Properties: map[string]*openapi.Schema{
				"phrase":         str,
				"risk_level":     risk,
				"violation_type": str,
				"reference_id":   str,
			},
		},
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":     {Type: "string", Format: "uuid"},
				"email":  {Type: "string", Format: "email"},
				"role":   {Type: "string", Enum: []any{"reviewer", "admin"}},
				"status": {Type: "string", Enum: []any{"active", "disabled"}},
			},
		},
		"UserCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"email":  {Type: "string", Format: "email"},
				"role":   {Type: "string", Enum: []any{"reviewer", "admin"}},
				"status": {Type: "string", Enum: []any{"active", "disabled"}},
			},
		},
		"AuditEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"action":     str,
				"actor":      str,
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"Settings": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"audit_log": {Type: "boolean"},
				"retention": {Type: "string", Pattern: "^[1-9][0-9]*[dwmy]$", Example: "90d"},
			},
		},
	}
}
