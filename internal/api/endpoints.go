package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/julianstephens/pillminder/internal/models"
)

// ListMedications returns the owner's medications.
func (c *Client) ListMedications(ctx context.Context) ([]models.Medication, error) {
	var meds []models.Medication
	if err := c.do(ctx, http.MethodGet, "/api/medications", nil, nil, &meds); err != nil {
		return nil, err
	}
	return meds, nil
}

// CreateMedication stores a new medication and returns the backend's copy.
func (c *Client) CreateMedication(ctx context.Context, med models.NewMedication) (*models.Medication, error) {
	var created models.Medication
	if err := c.do(ctx, http.MethodPost, "/api/medications", nil, med, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListIntakes returns the owner's intake history.
func (c *Client) ListIntakes(ctx context.Context) ([]models.Intake, error) {
	var intakes []models.Intake
	if err := c.do(ctx, http.MethodGet, "/api/intakes", nil, nil, &intakes); err != nil {
		return nil, err
	}
	return intakes, nil
}

// LogIntake records that a dose was taken.
func (c *Client) LogIntake(ctx context.Context, intake models.NewIntake) (*models.Intake, error) {
	var created models.Intake
	if err := c.do(ctx, http.MethodPost, "/api/intakes", nil, intake, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetSchedule returns the owner's schedule for a date. An empty date lets
// the backend pick today.
func (c *Client) GetSchedule(ctx context.Context, date string) (*models.Schedule, error) {
	var sched models.Schedule
	if err := c.do(ctx, http.MethodGet, "/api/schedule", dateQuery(date), nil, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

// CreateShareLink asks the backend for a fresh read-only token.
func (c *Client) CreateShareLink(ctx context.Context) (*models.ShareLink, error) {
	var link models.ShareLink
	if err := c.do(ctx, http.MethodPost, "/api/share/create", nil, struct{}{}, &link); err != nil {
		return nil, err
	}
	if link.Token == "" {
		return nil, &DecodeError{Path: "/api/share/create", Err: fmt.Errorf("missing token")}
	}
	return &link, nil
}

// GetSharedSchedule returns the schedule visible through a share token.
func (c *Client) GetSharedSchedule(ctx context.Context, token, date string) (*models.Schedule, error) {
	var sched models.Schedule
	if err := c.do(ctx, http.MethodGet, sharePath(token, "/schedule"), dateQuery(date), nil, &sched); err != nil {
		return nil, err
	}
	return &sched, nil
}

// GetSharedIntakes returns the intake history visible through a share token.
func (c *Client) GetSharedIntakes(ctx context.Context, token string) ([]models.Intake, error) {
	var intakes []models.Intake
	if err := c.do(ctx, http.MethodGet, sharePath(token, "/intakes"), nil, nil, &intakes); err != nil {
		return nil, err
	}
	return intakes, nil
}
