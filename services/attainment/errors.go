package attainment

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrGlobalConfigNotSet  = errors.New("GlobalConfig not set")
	ErrCourseNotFound      = errors.New("course not found")
	ErrProgramNotFound     = errors.New("program not found")
	ErrCourseNotInSemester = errors.New("course does not belong to the requested semester")
)

// MissingCOAttainmentError is returned when a PO is computed before every mapped CO has an attainment record
type MissingCOAttainmentError struct {
	ProgramOutcomeID uint
	CourseID         uint
	CourseOutcomeIDs []uint
}

func (e *MissingCOAttainmentError) Error() string {
	ids := make([]string, len(e.CourseOutcomeIDs))
	for i, id := range e.CourseOutcomeIDs {
		ids[i] = fmt.Sprint(id)
	}
	return fmt.Sprintf("missing CO attainment for course outcome(s) %s (course %d, program outcome %d); calculate CO attainment first",
		strings.Join(ids, ", "), e.CourseID, e.ProgramOutcomeID)
}

// IsPrecondition reports whether err is a precondition failure rather than a data or storage error
func IsPrecondition(err error) bool {
	var missing *MissingCOAttainmentError
	return errors.Is(err, ErrGlobalConfigNotSet) ||
		errors.Is(err, ErrCourseNotInSemester) ||
		errors.As(err, &missing)
}
