package quizimport

import "fmt"

type ImportReport struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	CreatedCount int      `json:"created_count"`
	Errors       []string `json:"errors"`
}

func BuildReport(createdCount int, errs []string) ImportReport {
	out := make([]string, len(errs))
	copy(out, errs)

	msg := fmt.Sprintf("Successfully created %d quizzes", createdCount)
	if len(out) > 0 {
		msg += fmt.Sprintf(" with %d errors", len(out))
	}
	return ImportReport{
		Success:      createdCount > 0,
		Message:      msg,
		CreatedCount: createdCount,
		Errors:       out,
	}
}
