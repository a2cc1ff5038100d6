package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/glyphfit/search"
)

// TraceHeader is the header row written by WriteTrace.
var TraceHeader = []string{"side", "step", "x_min", "x_max", "density", "diff", "selected"}

// WriteTrace writes the step traces of the given sides as CSV, one row per
// step. The selected column marks the step each side chose.
func WriteTrace(w io.Writer, sides ...search.SideResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TraceHeader); err != nil {
		return fmt.Errorf("report: trace: %w", err)
	}
	for _, side := range sides {
		for i, st := range side.Trace {
			selected := !side.Empty && st.Area == side.Area
			record := []string{
				side.Side.String(),
				strconv.Itoa(i),
				strconv.Itoa(st.Area.X1),
				strconv.Itoa(st.Area.X2),
				strconv.FormatFloat(st.Density, 'g', -1, 64),
				strconv.FormatFloat(st.Diff, 'g', -1, 64),
				strconv.FormatBool(selected),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("report: trace: %w", err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: trace: %w", err)
	}
	return nil
}
