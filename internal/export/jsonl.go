package export

import (
	"bufio"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/mwgeurts/viewray-decisionlogs/internal/gating"
	"github.com/mwgeurts/viewray-decisionlogs/internal/iox"
)

// WriteDecisionsJSONL writes one JSON object per decision, one per line, in
// sequence order.
func WriteDecisionsJSONL(path string, decisions []gating.Decision) error {
	out, err := iox.CreateAuto(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	w := bufio.NewWriterSize(out, 1<<20)
	for _, d := range decisions {
		b, err := sonic.Marshal(d)
		if err != nil {
			return fmt.Errorf("marshal decision: %w", err)
		}
		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return w.Flush()
}
