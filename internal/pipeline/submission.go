package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/JaimeStill/adscreen/pkg/formatting"
	"github.com/JaimeStill/adscreen/pkg/handlers"
)

// Submission is a validated analysis request.
type Submission struct {
	AdName   string
	Image    []byte
	MIMEType string
}

type submissionBody struct {
	AdName string `json:"ad_name"`
	Image  string `json:"image"`
}

// multipartOverhead is the allowance for form fields and boundaries on top
// of the image itself.
const multipartOverhead = 1 << 20

// DecodeSubmission reads a submission from a JSON body ({ad_name, image},
// image as a data URI or bare base64) or a multipart form (ad_name field,
// image file). Decoded images larger than maxSize are rejected.
func DecodeSubmission(w http.ResponseWriter, r *http.Request, maxSize int64) (*Submission, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return decodeMultipart(w, r, maxSize)
	}
	return decodeJSONBody(w, r, maxSize)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, maxSize int64) (*Submission, error) {
	limit := base64.StdEncoding.EncodedLen(int(maxSize)) + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, int64(limit))

	body, err := handlers.DecodeJSON[submissionBody](r)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge(maxSize)
		}
		return nil, ErrInvalidBody
	}

	adName := strings.TrimSpace(body.AdName)
	if adName == "" {
		return nil, ErrMissingAdName
	}
	if strings.TrimSpace(body.Image) == "" {
		return nil, ErrMissingImage
	}

	declared, data, err := DecodeImage(body.Image)
	if err != nil {
		return nil, err
	}

	return newSubmission(adName, data, declared, maxSize)
}

func decodeMultipart(w http.ResponseWriter, r *http.Request, maxSize int64) (*Submission, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge(maxSize)
		}
		return nil, ErrInvalidBody
	}

	adName := strings.TrimSpace(r.FormValue("ad_name"))
	if adName == "" {
		return nil, ErrMissingAdName
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, ErrMissingImage
	}
	defer file.Close()

	if header.Size > maxSize {
		return nil, tooLarge(maxSize)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrInvalidImage
	}

	return newSubmission(adName, data, header.Header.Get("Content-Type"), maxSize)
}

func newSubmission(adName string, data []byte, declared string, maxSize int64) (*Submission, error) {
	if len(data) == 0 {
		return nil, ErrMissingImage
	}
	if int64(len(data)) > maxSize {
		return nil, tooLarge(maxSize)
	}

	mimeType, err := ImageType(declared, data)
	if err != nil {
		return nil, err
	}

	return &Submission{AdName: adName, Image: data, MIMEType: mimeType}, nil
}

// DecodeImage decodes a data URI ("data:<mime>;base64,<data>") or bare
// base64 string. The declared MIME type is empty for bare base64.
func DecodeImage(s string) (string, []byte, error) {
	s = strings.TrimSpace(s)

	var declared string
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, ErrInvalidImage
		}
		mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
		if !isBase64 {
			return "", nil, ErrInvalidImage
		}
		declared = mediaType
		s = payload
	}

	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(s); err == nil {
			return declared, data, nil
		}
	}
	return "", nil, ErrInvalidImage
}

// ImageType returns the declared type when it names an image, otherwise
// the sniffed type. Content that does not sniff as an image is rejected.
func ImageType(declared string, data []byte) (string, error) {
	if mediaType, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mediaType, "image/") {
		return mediaType, nil
	}

	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return "", ErrInvalidImage
	}
	return sniffed, nil
}

func tooLarge(maxSize int64) error {
	return fmt.Errorf("%w (limit %s)", ErrImageTooLarge, formatting.FormatBytes(maxSize, 0))
}
