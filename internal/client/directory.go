package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"vetclinic/config"
	"vetclinic/internal/domain"
)

// DirectoryClient talks to the service that owns users, pets, veterinarians
// and their working hours.
type DirectoryClient struct {
	http         *Client
	availability *gobreaker.CircuitBreaker[bool]
	lookups      *gobreaker.CircuitBreaker[string]
	logger       *zap.Logger
}

func NewDirectoryClient(cfg config.DirectoryConfig, breaker config.BreakerConfig, observer BreakerObserver, logger *zap.Logger) (*DirectoryClient, error) {
	httpClient, err := NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("directory client: %w", err)
	}

	return &DirectoryClient{
		http:         httpClient,
		availability: NewBreaker[bool]("directory_availability", breaker, observer, logger),
		lookups:      NewBreaker[string]("directory_lookups", breaker, observer, logger),
		logger:       logger,
	}, nil
}

type availabilityResponse struct {
	Available *bool `json:"disponible"`
}

// IsAvailable reports false with an error when the answer could not be obtained.
// A response without the field counts as unavailable.
func (c *DirectoryClient) IsAvailable(ctx context.Context, vetID string, date time.Time, clock string) (bool, error) {
	query := url.Values{}
	query.Set("fecha", domain.FormatDate(date))
	query.Set("hora", clock)
	path := "/disponibilidades/verificar/" + url.PathEscape(vetID) + "?" + query.Encode()

	return c.availability.Execute(func() (bool, error) {
		var resp availabilityResponse
		if err := c.http.DoJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
			return false, fmt.Errorf("checking availability of veterinarian %s: %w", vetID, err)
		}
		return resp.Available != nil && *resp.Available, nil
	})
}

func (c *DirectoryClient) EmailFor(ctx context.Context, patientID string) string {
	return c.lookup(ctx, "email", "/usuarios/buscarEmail/idMascota/"+url.PathEscape(patientID))
}

func (c *DirectoryClient) PetNameFor(ctx context.Context, patientID string) string {
	return c.lookup(ctx, "pet_name", "/mascotas/nombre/"+url.PathEscape(patientID))
}

func (c *DirectoryClient) VetNameFor(ctx context.Context, vetID string) string {
	return c.lookup(ctx, "vet_name", "/veterinarios/nombre/"+url.PathEscape(vetID))
}

// lookup returns "" on any failure; callers treat that as absent.
func (c *DirectoryClient) lookup(ctx context.Context, what, path string) string {
	value, err := c.lookups.Execute(func() (string, error) {
		return c.http.DoText(ctx, path)
	})
	if err != nil {
		c.logger.Warn("directory lookup failed", zap.String("lookup", what), zap.String("path", path), zap.Error(err))
		return ""
	}
	return strings.Trim(value, `"`)
}
