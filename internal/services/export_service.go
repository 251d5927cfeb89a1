package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/pkg/apperrors"

	"github.com/xuri/excelize/v2"
)

// ExportService builds the admin XLSX dump of all resumes.
type ExportService interface {
	ResumesXLSX(ctx context.Context) (*bytes.Buffer, error)
}

type exportService struct {
	resumes repositories.ResumeRepository
}

func NewExportService(resumes repositories.ResumeRepository) ExportService {
	return &exportService{resumes: resumes}
}

var resumeExportHeader = []string{
	"Name", "Email", "Phone", "City", "State", "Country",
	"Profession", "Experience (years)", "Cuisines",
	"Current CTC", "Expected CTC", "Work Type", "Verified", "Created",
}

func (s *exportService) ResumesXLSX(ctx context.Context) (*bytes.Buffer, error) {
	resumes, err := s.resumes.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Resumes"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, h := range resumeExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	for row, r := range resumes {
		values := resumeExportRow(&r)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buf, nil
}

func resumeExportRow(r *models.Resume) []interface{} {
	return []interface{}{
		r.Name,
		r.Email,
		r.Phone,
		r.City,
		r.State,
		r.Country,
		r.Profession,
		r.ExperienceYears,
		strings.Join(r.Cuisines, ", "),
		r.CurrentCTC,
		r.ExpectedCTC,
		string(r.WorkType),
		fmt.Sprintf("%t", r.Verified),
		r.CreatedAt.Format("2006-01-02"),
	}
}
