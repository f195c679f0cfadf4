// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/ik5/audproc/audio"
)

// errorResult is printed instead of a result when a command fails.
type errorResult struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func writeError(w io.Writer, err error) {
	res := errorResult{
		Error:   err.Error(),
		Message: audio.ContextOf(err, "Processing failed"),
		Code:    audio.KindOf(err).String(),
	}

	enc := json.NewEncoder(w)
	if encErr := enc.Encode(res); encErr != nil {
		fmt.Fprintln(w, err)
	}
}

// emit prints v as JSON, or rows as a two column table when the table
// output is selected.
func (a *app) emit(v any, rows [][]string) error {
	if a.v.GetString(keyOutput) != "table" {
		if err := json.NewEncoder(a.out).Encode(v); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		return nil
	}

	table := tablewriter.NewWriter(a.out)
	table.Header([]string{"Field", "Value"})
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func invalidParam(op string, err error) error {
	return audio.NewError(audio.KindInvalidParameter, op, "Invalid arguments",
		fmt.Errorf("%w: %w", audio.ErrInvalidParameter, err))
}

func parseFloat(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalidParam("parse", fmt.Errorf("%s: %w", name, err))
	}
	return f, nil
}
