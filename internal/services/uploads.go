package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// UploadResponse is what the image host answered, relayed to the client as-is.
type UploadResponse struct {
	ContentType string
	Body        []byte
}

// ImgbbHost forwards the request body untouched to an imgbb-compatible endpoint.
type ImgbbHost struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewImgbbHost(endpoint, apiKey string) *ImgbbHost {
	return &ImgbbHost{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (h *ImgbbHost) Upload(ctx context.Context, contentType string, body []byte) (*UploadResponse, error) {
	target, err := h.targetURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send upload request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("image host returned %s: %s", resp.Status, truncate(respBody, 512))
	}

	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/json"
	}
	return &UploadResponse{ContentType: ct, Body: respBody}, nil
}

// targetURL adds the configured key unless the endpoint already carries one.
func (h *ImgbbHost) targetURL() (string, error) {
	u, err := url.Parse(h.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse upload endpoint: %w", err)
	}
	if h.apiKey != "" {
		q := u.Query()
		if q.Get("key") == "" {
			q.Set("key", h.apiKey)
			u.RawQuery = q.Encode()
		}
	}
	return u.String(), nil
}

// CloudinaryHost stores the image in Cloudinary and answers in the same
// envelope imgbb uses, so clients read data.display_url either way.
type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryHost(cloudName, apiKey, apiSecret, folder string) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config error: %w", err)
	}
	return &CloudinaryHost{cld: cld, folder: folder}, nil
}

func (h *CloudinaryHost) Upload(ctx context.Context, contentType string, body []byte) (*UploadResponse, error) {
	file, err := ReadImagePayload(contentType, body)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	res, err := h.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: h.folder})
	if err != nil {
		return nil, fmt.Errorf("upload error: %w", err)
	}

	out, err := json.Marshal(imgbbEnvelope(res.PublicID, res.SecureURL))
	if err != nil {
		return nil, err
	}
	return &UploadResponse{ContentType: "application/json", Body: out}, nil
}

func imgbbEnvelope(id, link string) map[string]interface{} {
	return map[string]interface{}{
		"data": map[string]interface{}{
			"id":          id,
			"url":         link,
			"display_url": link,
		},
		"success": true,
		"status":  http.StatusOK,
	}
}

var errNoImage = errors.New("request carries no image")

// ReadImagePayload extracts the image from a multipart form (field "image")
// or a JSON body {"image": ...}. JSON values may be a URL, a data URI or bare
// base64; bare base64 is turned into a data URI.
func ReadImagePayload(contentType string, body []byte) (interface{}, error) {
	mediaType, params, _ := mime.ParseMediaType(contentType)

	if strings.HasPrefix(mediaType, "multipart/") {
		r := multipart.NewReader(bytes.NewReader(body), params["boundary"])
		for {
			part, err := r.NextPart()
			if err == io.EOF {
				return nil, errNoImage
			}
			if err != nil {
				return nil, fmt.Errorf("read multipart body: %w", err)
			}
			if part.FormName() != "image" {
				continue
			}
			data, err := io.ReadAll(part)
			if err != nil {
				return nil, fmt.Errorf("read image part: %w", err)
			}
			return bytes.NewReader(data), nil
		}
	}

	var payload struct {
		Image string `json:"image"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}
	image := strings.TrimSpace(payload.Image)
	switch {
	case image == "":
		return nil, errNoImage
	case strings.HasPrefix(image, "http://"), strings.HasPrefix(image, "https://"), strings.HasPrefix(image, "data:"):
		return image, nil
	}

	raw, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return nil, fmt.Errorf("image is not base64: %w", err)
	}
	return "data:" + http.DetectContentType(raw) + ";base64," + image, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
