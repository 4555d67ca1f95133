package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// DefaultAvatar is stored when registration carries no image.
const DefaultAvatar = "default.png"

// CDNAvatarService implements domain.AvatarService by uploading the raw
// image to the CDN service. Calls go through a circuit breaker so a
// misbehaving CDN cannot stall registrations indefinitely.
type CDNAvatarService struct {
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker[*http.Response]
	uploadURL string
	publicURL string
}

type uploadRequest struct {
	ImgString    string `json:"img_string"`
	MobileNumber string `json:"mobile_number"`
}

// NewCDNAvatarService creates a new avatar service. publicURL is the base
// the CDN serves stored avatars from.
func NewCDNAvatarService(uploadURL, publicURL string) *CDNAvatarService {
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "cdn-avatar",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
		},
	})

	return &CDNAvatarService{
		client:    &http.Client{Timeout: 10 * time.Second},
		breaker:   breaker,
		uploadURL: uploadURL,
		publicURL: publicURL,
	}
}

// URL implements domain.AvatarService
func (s *CDNAvatarService) URL(filename string) string {
	return strings.TrimSuffix(s.publicURL, "/") + "/" + filename
}

// Store implements domain.AvatarService. The image arrives as a data URI;
// only the base64 part after the comma is forwarded to the CDN. The stored
// filename is derived from the mobile number.
func (s *CDNAvatarService) Store(ctx context.Context, image, mobile string) (string, error) {
	if image == "" {
		return DefaultAvatar, nil
	}

	imgString := image
	if idx := strings.Index(image, ","); idx >= 0 {
		imgString = image[idx+1:]
	}

	body, err := json.Marshal(uploadRequest{ImgString: imgString, MobileNumber: mobile})
	if err != nil {
		return "", domain.Internal("failed to encode avatar upload", err)
	}

	resp, err := s.breaker.Execute(func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, fmt.Errorf("cdn service returned status %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		return "", domain.Internal("failed to upload the avatar image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", domain.Internal("failed to upload the avatar image",
			fmt.Errorf("cdn service returned status %d: %s", resp.StatusCode, raw))
	}

	return mobile + ".jpg", nil
}
