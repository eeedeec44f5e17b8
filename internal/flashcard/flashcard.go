// Package flashcard exports catalog content as CSV for flashcard apps.
package flashcard

import (
	"encoding/csv"
	"fmt"
	"io"

	"certbuddy/internal/exam"
)

// WriteCSV writes concept cards in Question,Answer format with a header row.
func WriteCSV(w io.Writer, cards []exam.ConceptCard) error {
	if len(cards) == 0 {
		return fmt.Errorf("no content to export")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Question", "Answer"}); err != nil {
		return err
	}
	for _, c := range cards {
		if err := cw.Write([]string{c.Question, c.Answer}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
