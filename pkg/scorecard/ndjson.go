package scorecard

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// WriteNDJSON emits one compact JSON object per record, newline
// delimited, in the order given.
func WriteNDJSON(w io.Writer, records []*Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if r == nil {
			continue
		}
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, "failed to encode record")
		}
	}
	return nil
}
