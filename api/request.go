package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Year accepts both 2024 and "2024" in request bodies
type Year int

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("year is required")
	}

	var raw string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	year, err := parseYear(raw)
	if err != nil {
		return err
	}
	*y = Year(year)
	return nil
}

func parseYear(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("year must be an integer, got %q", raw)
	}
	if year <= 0 {
		return 0, fmt.Errorf("year must be positive, got %d", year)
	}
	return year, nil
}

// shipYearRequest is the body of the bank and apply endpoints
type shipYearRequest struct {
	ShipID string `json:"shipId" binding:"required"`
	Year   *Year  `json:"year" binding:"required"`
}

// createPoolRequest is the body of POST /pools
type createPoolRequest struct {
	Year    *Year    `json:"year" binding:"required"`
	ShipIDs []string `json:"shipIds" binding:"required,min=1,dive,required"`
}

// shipYearQuery holds the shipId and year query parameters
type shipYearQuery struct {
	ShipID string `form:"shipId" binding:"required"`
	Year   string `form:"year" binding:"required"`
}
