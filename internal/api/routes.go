package api

import (
	"net/http"

	"github.com/JaimeStill/adscreen/internal/auth"
	"github.com/JaimeStill/adscreen/pkg/openapi"
	"github.com/JaimeStill/adscreen/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime, spec []byte) {
	guard := runtime.Authorizer.Guard

	analyses := domain.Analyses.Handler()
	jobs := domain.Jobs.Handler()

	routes.Register(
		mux,
		guard(domain.Pipeline.Handler().Routes(), auth.AnalysisCreate),
		guard(jobs.SubmitRoutes(), auth.AnalysisCreate),
		guard(jobs.Routes(), auth.AnalysisRead),
		guard(analyses.HistoryRoutes(), auth.AnalysisHistoryRead),
		guard(analyses.Routes(), auth.AnalysisRead),
		domain.Files.Handler().Routes(),
		routes.Group{
			Prefix: "/admin",
			Children: []routes.Group{
				guard(domain.Phrases.Handler().Routes(), auth.AdminRegulationsManage),
				guard(domain.Users.Handler().Routes(), auth.AdminUsersManage),
				guard(domain.Settings.Handler().Routes(), auth.AdminSettingsManage),
				guard(domain.Audit.Handler().Routes(), auth.AdminSettingsManage),
			},
		},
	)

	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))
}
