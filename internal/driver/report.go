package driver

import (
	"strconv"

	"github.com/marco-vb/jmmc/internal/jmmerrors"
	"github.com/tidwall/sjson"
)

// ReportsJSON marshals a Result's diagnostics for tooling (editor
// integrations, CI annotations). Built incrementally with
// github.com/tidwall/sjson rather than encoding/json struct tags, so a
// CompilerError never needs exported JSON-shaped field names of its own.
func (r *Result) ReportsJSON() (string, error) {
	json := `{"ok":true,"reports":[]}`
	var err error
	json, err = sjson.Set(json, "ok", r.OK())
	if err != nil {
		return "", err
	}
	for i, rep := range r.Reports {
		json, err = setReport(json, i, rep)
		if err != nil {
			return "", err
		}
	}
	return json, nil
}

func setReport(json string, i int, rep *jmmerrors.CompilerError) (string, error) {
	prefix := "reports." + strconv.Itoa(i) + "."
	var err error
	for _, kv := range []struct {
		path string
		val  any
	}{
		{"stage", string(rep.Stage)},
		{"severity", string(rep.Severity)},
		{"line", rep.Pos.Line},
		{"column", rep.Pos.Column},
		{"message", rep.Message},
		{"file", rep.File},
	} {
		json, err = sjson.Set(json, prefix+kv.path, kv.val)
		if err != nil {
			return "", err
		}
	}
	return json, nil
}
