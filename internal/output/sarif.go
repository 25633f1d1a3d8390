package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/redline/internal/review"
)

// SARIFWriter outputs findings in SARIF v2.1.0 format, one result per
// issue. Unlocated issues carry no region so viewers pin them to the file.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *Report) error {
	sarif := buildSARIF(report)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

func buildSARIF(report *Report) sarifLog {
	var results []sarifResult
	usedRules := make(map[string]bool)

	for _, doc := range report.Documents {
		for _, issue := range doc.Issues {
			ruleID := ruleForSeverity(issue.Severity)
			usedRules[ruleID] = true

			result := sarifResult{
				RuleID:  ruleID,
				Level:   severityToLevel(issue.Severity),
				Message: sarifMessage{Text: issue.Message},
			}
			if issue.Located {
				result.Locations = []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: doc.Path},
						Region: sarifRegion{
							StartLine:   issue.Line + 1,
							StartColumn: issue.Col + 1,
							EndLine:     issue.EndLine + 1,
							EndColumn:   issue.EndCol + 1,
						},
					},
				}}
			} else {
				result.Locations = []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: doc.Path},
						Region:           sarifRegion{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1},
					},
				}}
			}
			results = append(results, result)
		}
	}

	// Rules in fixed severity order, only those actually used.
	var rules []sarifRule
	for _, sev := range []review.Severity{review.SeverityError, review.SeverityWarning, review.SeverityInfo, review.SeverityHint} {
		id := ruleForSeverity(sev)
		if usedRules[id] {
			rules = append(rules, sarifRule{
				ID:               id,
				Name:             string(sev),
				ShortDescription: sarifMessage{Text: fmt.Sprintf("%s severity review finding", sev)},
				DefaultConfig:    sarifDefaultConfig{Level: severityToLevel(sev)},
			})
		}
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "redline",
						Version:        report.Version,
						InformationURI: "https://github.com/dshills/redline",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}
}

// severityToLevel maps redline severity to SARIF level.
func severityToLevel(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "error"
	case review.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

func ruleForSeverity(s review.Severity) string {
	return "redline/" + string(s)
}
