package usecase

import (
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
)

// Sorted map keys keep the emitted bytes identical across reruns.
var documentJSON = sonic.Config{SortMapKeys: true}.Froze()

// EncodeDocument serializes the assembled document, running the
// non-finite scrub over the decoded tree between the two passes so the
// emitted bytes can never contain NaN or Infinity literals.
func EncodeDocument(doc dashboard.Document) ([]byte, error) {
	raw, err := documentJSON.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var tree map[string]any
	if err := documentJSON.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("decode document tree: %w", err)
	}
	scrubbed := ScrubNonFinite(tree)

	out, err := documentJSON.MarshalIndent(scrubbed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}
