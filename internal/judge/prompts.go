package judge

import (
	"encoding/json"
	"strings"

	"github.com/JaimeStill/adscreen/internal/screening"
)

const judgeInstructions = `You are a medical advertising review assistant. Using only the information and the image provided, assess whether the advertisement may violate the Medical Service Act.

- Use only the legal guidelines and reference IDs provided. Never invent new articles or reference numbers.
- Quote "text" exactly as it appears in the image whenever possible.
- Respond with a single JSON object only. Do not add explanations or code fences.`

const judgeOutputSpec = `Output schema:
{
  "passScore": 0-100,
  "riskLevel": "high" | "medium" | "low",
  "findings": [
    {
      "text": "phrase",
      "violationType": "type of violation",
      "riskLevel": "high" | "medium" | "low",
      "referenceId": "ML56-02",
      "rationale": "short basis"
    }
  ],
  "rationale": "2-4 sentence advisory summary"
}`

const summaryInstructions = `The following are OCR results and forbidden expression findings for a medical advertisement.
Write a 2-4 sentence review rationale for a human reviewer based on this information.
Avoid exaggeration or definitive verdicts and state that the rationale is advisory only.`

const noneText = "none"

func judgePrompt(req Request, catalog *screening.Catalog) string {
	ocrText := strings.TrimSpace(req.OCRText)
	if ocrText == "" {
		ocrText = noneText
	}

	var b strings.Builder
	b.WriteString(judgeOutputSpec)
	b.WriteString("\n\nAdvertisement name: ")
	b.WriteString(req.AdName)
	b.WriteString("\nOCR text (reference only): ")
	b.WriteString(ocrText)
	b.WriteString("\n\nLegal guidelines:\n")
	b.WriteString(screening.Guidelines)
	b.WriteString("\n\nAllowed reference IDs:\n")
	b.WriteString(catalog.ListText())
	return b.String()
}

func summaryPrompt(req SummaryRequest) string {
	ocrText := strings.TrimSpace(req.OCRText)
	if ocrText == "" {
		ocrText = noneText
	}

	findings := noneText
	if len(req.Findings) > 0 {
		if data, err := json.Marshal(req.Findings); err == nil {
			findings = string(data)
		}
	}

	var b strings.Builder
	b.WriteString("Advertisement name: ")
	b.WriteString(req.AdName)
	b.WriteString("\nOCR text: ")
	b.WriteString(ocrText)
	b.WriteString("\nFindings: ")
	b.WriteString(findings)
	b.WriteString("\nLegal basis summary:\n")
	b.WriteString(req.LegalSummary)
	return b.String()
}
