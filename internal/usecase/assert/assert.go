package assert

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/fnkit/internal/domain"
)

func pass(name, format string, args ...any) domain.AssertionResult {
	return domain.AssertionResult{Name: name, Passed: true, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) domain.AssertionResult {
	return domain.AssertionResult{Name: name, Passed: false, Message: fmt.Sprintf(format, args...)}
}

// Outcome checks the failure expectation. A nil expected kind means the
// invocation must succeed.
func Outcome(expected *domain.ErrorKind, got *domain.InvocationError) domain.AssertionResult {
	switch {
	case expected == nil && got == nil:
		return pass("error", "no error")
	case expected == nil:
		return fail("error", "unexpected %s error: %s", got.Kind, got.Message)
	case got == nil:
		return fail("error", "expected %s error, got success", *expected)
	case got.Kind != *expected:
		return fail("error", "expected %s error, got %s: %s", *expected, got.Kind, got.Message)
	default:
		return pass("error", "%s error", got.Kind)
	}
}

func MinLatency(minMs int, latencyMs int64) domain.AssertionResult {
	if latencyMs >= int64(minMs) {
		return pass("min_ms", "latency %dms >= %dms", latencyMs, minMs)
	}
	return fail("min_ms", "expected latency >= %dms, got %dms", minMs, latencyMs)
}

func MaxLatency(maxMs int, latencyMs int64) domain.AssertionResult {
	if latencyMs <= int64(maxMs) {
		return pass("max_ms", "latency %dms <= %dms", latencyMs, maxMs)
	}
	return fail("max_ms", "expected latency <= %dms, got %dms", maxMs, latencyMs)
}

// Equals compares the JSON output with expected after normalizing both
// through encoding/json, so 33 and 33.0 compare equal.
func Equals(expected any, output []byte) domain.AssertionResult {
	want, err := normalize(expected)
	if err != nil {
		return fail("equals", "expected value is not JSON-encodable: %v", err)
	}
	got, err := parseJSON(output)
	if err != nil {
		return fail("equals", "output is not valid JSON: %v", err)
	}
	if cmp.Equal(want, got) {
		return pass("equals", "output equals %s", compact(output))
	}
	return fail("equals", "expected %s, got %s", mustMarshal(want), compact(output))
}

// Evaluate checks one invocation result against its assertions.
// Output checks are skipped when the invocation failed.
func Evaluate(spec domain.AssertionsSpec, res domain.InvocationResult) []domain.AssertionResult {
	out := []domain.AssertionResult{Outcome(spec.Error, res.Error)}

	if spec.MinLatencyMS != nil {
		out = append(out, MinLatency(*spec.MinLatencyMS, res.LatencyMS))
	}
	if spec.MaxLatencyMS != nil {
		out = append(out, MaxLatency(*spec.MaxLatencyMS, res.LatencyMS))
	}

	if res.Error != nil {
		return out
	}

	if spec.HasEquals {
		out = append(out, Equals(spec.Equals, res.Output))
	}

	if len(spec.JSONPath) == 0 {
		return out
	}

	exprs := make([]string, 0, len(spec.JSONPath))
	for expr := range spec.JSONPath {
		exprs = append(exprs, expr)
	}
	sort.Strings(exprs)

	doc, err := parseJSON(res.Output)
	if err != nil {
		for _, expr := range exprs {
			out = append(out, jsonPathChecks(expr, spec.JSONPath[expr], nil,
				fmt.Errorf("output is not valid JSON"))...)
		}
		return out
	}

	for _, expr := range exprs {
		val, getErr := jsonpath.Get(expr, doc)
		out = append(out, jsonPathChecks(expr, spec.JSONPath[expr], val, getErr)...)
	}

	return out
}

func jsonPathChecks(expr string, a domain.JSONPathAssertion, val any, getErr error) []domain.AssertionResult {
	var out []domain.AssertionResult
	if a.Exists {
		out = append(out, checkExists(expr, val, getErr))
	}
	if a.Eq != nil {
		out = append(out, checkString("jsonpath.eq", expr, val, getErr, *a.Eq))
	}
	if a.Contains != nil {
		out = append(out, checkString("jsonpath.contains", expr, val, getErr, *a.Contains))
	}
	if a.Matches != nil {
		out = append(out, checkString("jsonpath.matches", expr, val, getErr, *a.Matches))
	}
	if a.Gt != nil {
		out = append(out, checkNumber("jsonpath.gt", expr, val, getErr, *a.Gt))
	}
	if a.Lt != nil {
		out = append(out, checkNumber("jsonpath.lt", expr, val, getErr, *a.Lt))
	}
	return out
}

func checkExists(expr string, val any, getErr error) domain.AssertionResult {
	const name = "jsonpath.exists"
	if getErr != nil {
		return fail(name, "invalid jsonpath %q: %v", expr, getErr)
	}
	if isEmptyJSONPathValue(val) {
		return fail(name, "jsonpath %q: expected value to exist, got empty", expr)
	}
	return pass(name, "jsonpath %q exists", expr)
}

func checkString(name, expr string, val any, getErr error, operand string) domain.AssertionResult {
	if getErr != nil {
		return fail(name, "jsonpath %q: %v", expr, getErr)
	}
	s, err := jsonPathToString(val)
	if err != nil {
		return fail(name, "jsonpath %q: %v", expr, err)
	}

	switch name {
	case "jsonpath.eq":
		if s == operand {
			return pass(name, "jsonpath %q eq %q", expr, operand)
		}
		return fail(name, "jsonpath %q: expected %q, got %q", expr, operand, s)
	case "jsonpath.contains":
		if strings.Contains(s, operand) {
			return pass(name, "jsonpath %q contains %q", expr, operand)
		}
		return fail(name, "jsonpath %q: %q does not contain %q", expr, s, operand)
	default:
		re, err := regexp.Compile(operand)
		if err != nil {
			return fail(name, "jsonpath %q: invalid regex %q: %v", expr, operand, err)
		}
		if re.MatchString(s) {
			return pass(name, "jsonpath %q matches %q", expr, operand)
		}
		return fail(name, "jsonpath %q: %q does not match %q", expr, s, operand)
	}
}

func checkNumber(name, expr string, val any, getErr error, threshold float64) domain.AssertionResult {
	if getErr != nil {
		return fail(name, "jsonpath %q: %v", expr, getErr)
	}
	f, err := jsonPathToFloat64(val)
	if err != nil {
		return fail(name, "jsonpath %q: %v", expr, err)
	}

	if name == "jsonpath.gt" {
		if f > threshold {
			return pass(name, "jsonpath %q: %v > %v", expr, f, threshold)
		}
		return fail(name, "jsonpath %q: expected > %v, got %v", expr, threshold, f)
	}
	if f < threshold {
		return pass(name, "jsonpath %q: %v < %v", expr, f, threshold)
	}
	return fail(name, "jsonpath %q: expected < %v, got %v", expr, threshold, f)
}

func jsonPathToString(val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", fmt.Errorf("value is null")
	default:
		return string(mustMarshal(v)), nil
	}
}

func jsonPathToFloat64(val any) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value of type %T is not numeric", val)
	}
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func normalize(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return parseJSON(b)
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(fmt.Sprint(v))
	}
	return b
}

func compact(b []byte) string {
	if len(b) > 120 {
		return string(b[:117]) + "..."
	}
	return string(b)
}

func isEmptyJSONPathValue(v any) bool {
	if v == nil {
		return true
	}

	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
