package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/features"
)

const intro = "Analyze this Google Play Store app for potential fraud indicators or harmful behavior."

var fraudPatterns = []string{
	"Misleading descriptions vs. actual functionality",
	"Excessive permissions relative to stated purpose",
	"Developer with suspicious patterns (new account, no website, etc.)",
	"Financial/crypto apps with high fees or vague value propositions",
	"Clone apps mimicking popular apps with slight name variations",
	"Apps requesting sensitive permissions without clear justification",
}

var checklist = []string{
	"Evaluate the consistency between app description and category",
	"Assess if permissions requested match the stated functionality",
	"Check developer credibility indicators",
	"Identify patterns matching known financial scams or malware",
	"Analyze review patterns for authenticity",
}

// OutputInstruction is the only output contract the judgment model gets. It
// must stay byte-identical across calls.
const OutputInstruction = `Respond with a JSON object ONLY in this exact format:
{
    "type": "fraud" | "genuine" | "suspected",
    "reason": "<concise explanation in less than 300 characters>"
}

Your analysis should be thorough but the output must match the exact format specified.`

//go:generate mockery --name=Builder --dir=. --output=./mocks --filename=builder_mock.go --case=underscore --with-expecter

type Builder interface {
	Build(bundle features.Bundle) (string, error)
}

type builder struct{}

func NewBuilder() Builder {
	return &builder{}
}

func (b *builder) Build(bundle features.Bundle) (string, error) {
	developer, err := indentJSON(bundle.Developer)
	if err != nil {
		return "", fmt.Errorf("failed to encode developer info: %w", err)
	}
	permissions, err := indentJSON(bundle.Permissions)
	if err != nil {
		return "", fmt.Errorf("failed to encode permissions: %w", err)
	}
	reviews, err := indentJSON(bundle.ReviewsSummary)
	if err != nil {
		return "", fmt.Errorf("failed to encode review summary: %w", err)
	}
	indicators, err := indentJSON(bundle.SuspiciousIndicators)
	if err != nil {
		return "", fmt.Errorf("failed to encode suspicious indicators: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(intro)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "App Title: %s\n", bundle.Title)
	fmt.Fprintf(&sb, "App Category: %s\n", bundle.Category)
	fmt.Fprintf(&sb, "Price: %s\n", strconv.FormatFloat(bundle.Price, 'f', -1, 64))
	fmt.Fprintf(&sb, "Content Rating: %s\n\n", bundle.ContentRating)

	writeSection(&sb, "Description:", bundle.Description)
	writeSection(&sb, "Developer Info:", developer)
	writeSection(&sb, "Permissions:", permissions)
	writeSection(&sb, "Review Analysis:", reviews)
	writeSection(&sb, "Suspicious indicators already identified:", indicators)

	sb.WriteString("Analyze for these common fraud patterns:\n")
	for _, p := range fraudPatterns {
		sb.WriteString("- ")
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	sb.WriteString("Based on this information:\n")
	for i, item := range checklist {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item)
	}
	sb.WriteByte('\n')

	sb.WriteString(OutputInstruction)
	sb.WriteByte('\n')
	return sb.String(), nil
}

func writeSection(sb *strings.Builder, title, body string) {
	sb.WriteString(title)
	sb.WriteByte('\n')
	sb.WriteString(body)
	sb.WriteString("\n\n")
}

func indentJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
