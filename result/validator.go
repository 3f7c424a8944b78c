// Package result assesses the quality of an ActionResult's output, the way
// a scenario author's confidence in a turn should discount with how thin
// the underlying data was.
package result

import (
	"fmt"
	"reflect"
)

// ResultQuality indicates the quality/completeness of an action's output.
type ResultQuality string

const (
	// QualityFull represents complete, meaningful results.
	QualityFull ResultQuality = "full"
	// QualityPartial represents some results but incomplete.
	QualityPartial ResultQuality = "partial"
	// QualityEmpty represents ran successfully but no findings.
	QualityEmpty ResultQuality = "empty"
	// QualitySuspect represents results present but anomalous.
	QualitySuspect ResultQuality = "suspect"
)

// ValidatedResult wraps an action's output with a quality assessment.
type ValidatedResult struct {
	Output      map[string]any `json:"output"`
	Quality     ResultQuality  `json:"quality"`
	Confidence  float64        `json:"confidence"` // 0.0-1.0
	Warnings    []string       `json:"warnings,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// ValidationRule inspects an ActionResult's Values and returns a quality
// level, a confidence score, and any warnings.
type ValidationRule func(output map[string]any) (ResultQuality, float64, []string)

// Validator assesses ActionResult.Values using configurable rules.
type Validator struct {
	rules []ValidationRule
}

// NewValidator creates a validator with the default rules: empty-output
// detection and latency/count anomaly detection.
func NewValidator() *Validator {
	return &Validator{
		rules: []ValidationRule{
			checkEmpty,
			checkAnomalies,
		},
	}
}

// WithRules appends custom rules to the validator, for benchmark-specific
// action handlers that know more about their own output shape.
func (v *Validator) WithRules(rules ...ValidationRule) *Validator {
	v.rules = append(v.rules, rules...)
	return v
}

// Validate assesses the quality of an action's output map. A nil or empty
// output map reports QualityFull with the default rules, since none of them
// finds a key to flag.
func (v *Validator) Validate(output map[string]any) *ValidatedResult {
	result := &ValidatedResult{
		Output:     output,
		Quality:    QualityFull,
		Confidence: 1.0,
	}

	for _, rule := range v.rules {
		quality, confidence, warnings := rule(output)

		if shouldDowngradeQuality(result.Quality, quality) {
			result.Quality = quality
		}
		if confidence < result.Confidence {
			result.Confidence = confidence
		}
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Suggestions = suggestionsForQuality(result.Quality)
	return result
}

// shouldDowngradeQuality reports whether candidate is a worse quality than
// current. Quality ordering: Full > Partial > Empty > Suspect.
func shouldDowngradeQuality(current, candidate ResultQuality) bool {
	qualityScore := map[ResultQuality]int{
		QualityFull:    4,
		QualityPartial: 3,
		QualityEmpty:   2,
		QualitySuspect: 1,
	}
	return qualityScore[candidate] < qualityScore[current]
}

// checkEmpty flags an action result whose Values carry an empty "items",
// "results" or "observations" entry, or a zero "matched_count". Absent keys
// are not flagged.
func checkEmpty(output map[string]any) (ResultQuality, float64, []string) {
	var warnings []string

	if items, ok := output["items"]; ok {
		if isEmpty(items) {
			warnings = append(warnings, "no items returned - the action may have found nothing to report")
			return QualityEmpty, 0.5, warnings
		}
	}

	if results, ok := output["results"]; ok {
		if isEmpty(results) {
			warnings = append(warnings, "no results returned - the handler may have exited before producing output")
			return QualityEmpty, 0.5, warnings
		}
	}

	if obs, ok := output["observations"]; ok {
		if isEmpty(obs) {
			warnings = append(warnings, "no observations recorded for this action")
			return QualityEmpty, 0.6, warnings
		}
	}

	if matched, ok := output["matched_count"]; ok {
		if n, numeric := getNumericValue(map[string]any{"matched_count": matched}, "matched_count"); numeric && n == 0 {
			warnings = append(warnings, "action reported zero matches")
			return QualityPartial, 0.7, warnings
		}
	}

	return QualityFull, 1.0, nil
}

// checkAnomalies flags an action result whose timing or counts look
// implausible for a real turn, independent of whether it carried data.
func checkAnomalies(output map[string]any) (ResultQuality, float64, []string) {
	var warnings []string

	if latency, ok := getNumericValue(output, "latency_ms"); ok {
		if latency < 0 {
			warnings = append(warnings, "negative latency reported - instrumentation bug, not a real duration")
			return QualitySuspect, 0.3, warnings
		}
	}

	if tokens, ok := getNumericValue(output, "tokens_used"); ok {
		if tokens < 0 {
			warnings = append(warnings, "negative token count reported")
			return QualitySuspect, 0.3, warnings
		}
	}

	if retries, ok := getNumericValue(output, "retry_count"); ok {
		if retries > 10 {
			warnings = append(warnings, fmt.Sprintf("action retried %d times - handler may be thrashing", int(retries)))
			return QualitySuspect, 0.4, warnings
		}
	}

	return QualityFull, 1.0, warnings
}

// suggestionsForQuality returns actionable suggestions for a scenario
// author reviewing a trace, based on the quality an action's output scored.
func suggestionsForQuality(quality ResultQuality) []string {
	switch quality {
	case QualityEmpty:
		return []string{
			"verify the environment driver is reachable and the scenario's setup turn succeeded",
			"check the action's parameter coercion - a missing required field often yields an empty handler result",
		}
	case QualityPartial:
		return []string{
			"consider whether the scenario's scale point under-provisions context for this action",
		}
	case QualitySuspect:
		return []string{
			"re-run the trial - the anomaly may be nondeterministic",
			"inspect the action handler's retry/backoff behavior",
		}
	case QualityFull:
		return []string{}
	default:
		return []string{}
	}
}

// isEmpty reports whether v is nil or an empty array/map/string.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}

	val := reflect.ValueOf(v)
	switch val.Kind() {
	case reflect.Array, reflect.Slice, reflect.Map, reflect.String:
		return val.Len() == 0
	case reflect.Ptr, reflect.Interface:
		if val.IsNil() {
			return true
		}
		return isEmpty(val.Elem().Interface())
	default:
		return false
	}
}

// getNumericValue extracts a numeric value from output, supporting int,
// int64, float32 and float64.
func getNumericValue(output map[string]any, key string) (float64, bool) {
	v, ok := output[key]
	if !ok {
		return 0, false
	}

	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	default:
		return 0, false
	}
}
