package merit

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/meritum/core"
	"github.com/trezcool/meritum/core/auth"
	"github.com/trezcool/meritum/core/student"
)

type (
	// UploadRecord is one row of a bulk merit upload sheet.
	UploadRecord struct {
		Name            string
		MatricNumber    string
		Role            string
		AdditionalNotes string
		LinkProof       string
	}

	// RowError reports a row that could not be uploaded; the batch continues
	// past it.
	RowError struct {
		Row   int    `json:"row"`
		Error string `json:"error"`
	}

	UploadReport struct {
		Uploaded int        `json:"uploaded"`
		Failed   []RowError `json:"failed"`
	}
)

var (
	errMissingColumns = errors.New("sheet must have name, matric and role columns")
	errInvalidMatric  = errors.New("invalid matric number")
)

// uploadHeader maps recognized (lower-cased) column names to record fields.
var uploadHeader = map[string]int{
	"name":            0,
	"matric":          1,
	"matricnumber":    1,
	"role":            2,
	"additionalnotes": 3,
	"notes":           3,
	"linkproof":       4,
	"proof":           4,
}

// ParseUploadCSV reads a merit sheet: a header row naming at least name,
// matric and role columns, then one row per award.
func ParseUploadCSV(r io.Reader) ([]UploadRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading header")
	}

	cols := make(map[int]int, len(header)) // csv index -> record field
	for i, h := range header {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", ""))
		if fld, ok := uploadHeader[key]; ok {
			cols[i] = fld
		}
	}
	if !hasRequiredColumns(cols) {
		return nil, errMissingColumns
	}

	var records []UploadRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading row")
		}

		var rec UploadRecord
		for i, fld := range cols {
			if i >= len(row) {
				continue
			}
			val := core.CleanString(row[i])
			switch fld {
			case 0:
				rec.Name = val
			case 1:
				rec.MatricNumber = strings.ToUpper(val)
			case 2:
				rec.Role = val
			case 3:
				rec.AdditionalNotes = val
			case 4:
				rec.LinkProof = val
			}
		}
		if rec.Name == "" && rec.MatricNumber == "" {
			continue // blank line
		}
		records = append(records, rec)
	}
	return records, nil
}

func hasRequiredColumns(cols map[int]int) bool {
	var hasName, hasMatric, hasRole bool
	for _, fld := range cols {
		switch fld {
		case 0:
			hasName = true
		case 1:
			hasMatric = true
		case 2:
			hasRole = true
		}
	}
	return hasName && hasMatric && hasRole
}

// BulkAward awards one merit per record against `eventID`. Students that do
// not exist yet are created from the sheet (they link up by matric at first
// login). Row failures do not abort the batch.
func (svc *Service) BulkAward(ctx context.Context, eventID int, meritType string, records []UploadRecord, actor string) (UploadReport, error) {
	if _, err := svc.events.GetEventByID(ctx, eventID); err != nil {
		return UploadReport{}, errors.Wrap(err, "finding event")
	}

	report := UploadReport{Failed: []RowError{}}
	for i, rec := range records {
		if err := svc.uploadRow(ctx, eventID, meritType, rec, actor); err != nil {
			report.Failed = append(report.Failed, RowError{Row: i + 1, Error: err.Error()})
			continue
		}
		report.Uploaded++
	}
	return report, nil
}

func (svc *Service) uploadRow(ctx context.Context, eventID int, meritType string, rec UploadRecord, actor string) error {
	if rec.Name == "" || rec.MatricNumber == "" || rec.Role == "" {
		return errMissingColumns
	}
	if !auth.ValidateMatric(rec.MatricNumber) {
		return errInvalidMatric
	}

	if _, err := svc.students.GetStudentByMatric(ctx, rec.MatricNumber); err != nil {
		if errors.Cause(err) != student.ErrNotFound {
			return err
		}
		_, err = svc.students.CreateStudent(ctx, student.Student{
			MatricNumber: rec.MatricNumber,
			DisplayName:  core.TitleCaseWords(rec.Name),
			Role:         auth.RoleStudent,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return err
		}
	}

	_, err := svc.Award(ctx, NewMerit{
		EventID:         eventID,
		MatricNumber:    rec.MatricNumber,
		Name:            rec.Name,
		Role:            rec.Role,
		AdditionalNotes: rec.AdditionalNotes,
		LinkProof:       rec.LinkProof,
		MeritType:       meritType,
	}, actor)
	return err
}
