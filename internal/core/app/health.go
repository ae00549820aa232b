package app

import (
	"context"
	"fmt"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]string),
	}

	if s.app == nil || s.app.Menu == nil {
		status.Status = "degraded"
		status.Components["menu_store"] = "missing"
	} else if n, err := s.app.Menu.Count(ctx); err != nil {
		status.Status = "degraded"
		status.Components["menu_store"] = fmt.Sprintf("error: %v", err)
	} else {
		status.Components["menu_store"] = fmt.Sprintf("ok (%d items)", n)
	}

	if s.app == nil || s.app.KV == nil {
		status.Status = "degraded"
		status.Components["kv_store"] = "missing"
	} else if _, err := s.app.KV.Keys(ctx); err != nil {
		status.Status = "degraded"
		status.Components["kv_store"] = fmt.Sprintf("error: %v", err)
	} else {
		status.Components["kv_store"] = "ok"
	}

	return status
}
