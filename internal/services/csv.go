package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/squeedr/squeedr-api/internal/models"
	"github.com/squeedr/squeedr-api/internal/permissions"
)

// CSVUser is the import/export row shape: name, email, role, status.
type CSVUser struct {
	Name   string
	Email  string
	Role   string
	Status string
}

var csvHeader = []string{"Name", "Email", "Role", "Status"}

// UsersToCSV renders users as CSV with a fixed header.
func UsersToCSV(users []models.User) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, u := range users {
		if err := w.Write([]string{u.Name, u.Email, u.PrimaryRole, u.Status}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// UsersFromCSV parses CSV user rows. Role and status default to client and
// invited when absent or not a known value. Rows without an email are
// skipped.
func UsersFromCSV(data string) ([]CSVUser, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx := map[string]int{}
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var users []CSVUser
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		u := CSVUser{
			Name:   field(record, idx, "name"),
			Email:  field(record, idx, "email"),
			Role:   field(record, idx, "role"),
			Status: field(record, idx, "status"),
		}
		if u.Email == "" {
			continue
		}
		if !permissions.ValidRole(u.Role) {
			u.Role = string(permissions.RoleClient)
		}
		if !validUserStatus(u.Status) {
			u.Status = models.UserStatusInvited
		}
		users = append(users, u)
	}
	return users, nil
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func validUserStatus(s string) bool {
	switch s {
	case models.UserStatusActive, models.UserStatusInvited, models.UserStatusSuspended:
		return true
	}
	return false
}
