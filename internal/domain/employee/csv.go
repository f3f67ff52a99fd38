package employee

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Header aliases accepted by the registry import, English first.
var csvColumns = map[string][]string{
	"code":       {"employeecode", "사원코드"},
	"name":       {"name", "사원명"},
	"email":      {"email", "이메일"},
	"department": {"department", "부서"},
	"position":   {"position", "직급"},
}

// ImportCSV applies a registry export to the store. The whole file is parsed
// first, so a malformed file changes nothing. Rows are then independent: a
// failing row is reported and the rest are still applied.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
	}
	if len(rows) == 0 {
		return ImportResult{}, fmt.Errorf("%w: missing header row", ErrInvalidCSV)
	}
	index := headerIndex(rows[0])
	if _, ok := index["code"]; !ok {
		return ImportResult{}, fmt.Errorf("%w: missing employee code column", ErrInvalidCSV)
	}

	result := ImportResult{Errors: []ImportError{}}
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}

		get := func(key string) string {
			if idx, ok := index[key]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		code := get("code")
		if code == "" {
			result.Errors = append(result.Errors, ImportError{EmployeeCode: "unknown", Message: ErrCodeRequired.Error()})
			continue
		}
		_, inserted, err := s.store.UpsertRegistry(ctx, Employee{
			EmployeeCode: code,
			Name:         get("name"),
			Email:        get("email"),
			Department:   get("department"),
			Position:     get("position"),
		})
		if err != nil {
			result.Errors = append(result.Errors, ImportError{EmployeeCode: code, Message: err.Error()})
			continue
		}
		if inserted {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func headerIndex(headers []string) map[string]int {
	index := map[string]int{}
	for i, h := range headers {
		normalized := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		for key, aliases := range csvColumns {
			if _, taken := index[key]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					index[key] = i
				}
			}
		}
	}
	return index
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
