package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"

	"startupconnect/internal/domain"
	"startupconnect/internal/domain/entity"
	"startupconnect/pkg/errcodes"
)

// maxPitchDeckSize bounds uploads and downloads. The backend enforces its
// own limit; this one keeps a misbehaving response from eating memory.
const maxPitchDeckSize = 32 << 20

// PitchDecksClient manages pitch deck documents: metadata CRUD plus the two
// binary routes (upload and download) that do not speak JSON.
type PitchDecksClient struct {
	*Client
}

func NewPitchDecksClient(base *Client) *PitchDecksClient {
	return &PitchDecksClient{Client: base}
}

func (c *PitchDecksClient) ByStartup(ctx context.Context, startupID int64) ([]entity.PitchDeck, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}

	if err := requireID(startupID, "startup"); err != nil {
		return nil, err
	}

	var dtos []pitchDeckDTO
	if err := c.get(ctx, fmt.Sprintf("/pitchdecks/startup/%d", startupID), nil, &dtos); err != nil {
		return nil, err
	}

	return mapPitchDecks(dtos), nil
}

// PublicByStartup lists decks the startup marked public. No session needed.
func (c *PitchDecksClient) PublicByStartup(ctx context.Context, startupID int64) ([]entity.PitchDeck, error) {
	if err := requireID(startupID, "startup"); err != nil {
		return nil, err
	}

	var dtos []pitchDeckDTO
	if err := c.get(ctx, fmt.Sprintf("/pitchdecks/startup/%d/public", startupID), nil, &dtos); err != nil {
		return nil, err
	}

	return mapPitchDecks(dtos), nil
}

type PitchDeckUpload struct {
	FileName    string
	Content     []byte
	Title       string
	Description string
	Public      bool
}

// Upload sends the deck as multipart form data. The file part goes first so
// streaming backends can start persisting before the metadata fields arrive.
func (c *PitchDecksClient) Upload(ctx context.Context, startupID int64, upload PitchDeckUpload) (entity.PitchDeck, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.PitchDeck{}, err
	}

	if err := requireID(startupID, "startup"); err != nil {
		return entity.PitchDeck{}, err
	}

	if len(upload.Content) == 0 {
		return entity.PitchDeck{}, domain.NewError(errcodes.ValidationError, "pitch deck file is empty")
	}

	if len(upload.Content) > maxPitchDeckSize {
		return entity.PitchDeck{}, domain.NewError(errcodes.PitchDeckTooBig, "pitch deck exceeds the size limit")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", upload.FileName)
	if err != nil {
		return entity.PitchDeck{}, fmt.Errorf("writer.CreateFormFile: %w", err)
	}

	if _, err := part.Write(upload.Content); err != nil {
		return entity.PitchDeck{}, fmt.Errorf("part.Write: %w", err)
	}

	fields := map[string]string{
		"title":       upload.Title,
		"description": upload.Description,
		"isPublic":    strconv.FormatBool(upload.Public),
	}

	for name, val := range fields {
		if err := writer.WriteField(name, val); err != nil {
			return entity.PitchDeck{}, fmt.Errorf("writer.WriteField: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return entity.PitchDeck{}, fmt.Errorf("writer.Close: %w", err)
	}

	endpoint := c.endpointURL(fmt.Sprintf("/pitchdecks/upload/%d", startupID), nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return entity.PitchDeck{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.PitchDeck{}, domain.WrapError(err, errcodes.BackendUnavailable, "backend request failed")
	}

	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return entity.PitchDeck{}, err
	}

	var dto pitchDeckDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return entity.PitchDeck{}, domain.WrapError(err, errcodes.DecodeError, "unexpected response shape")
	}

	return dto.toEntity(), nil
}

type PitchDeckParams struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Public      bool   `json:"isPublic"`
}

func (c *PitchDecksClient) Update(ctx context.Context, deckID int64, params PitchDeckParams) (entity.PitchDeck, error) {
	if _, err := c.requireSession(); err != nil {
		return entity.PitchDeck{}, err
	}

	if err := requireID(deckID, "pitch deck"); err != nil {
		return entity.PitchDeck{}, err
	}

	var dto pitchDeckDTO
	if err := c.put(ctx, fmt.Sprintf("/pitchdecks/%d", deckID), nil, params, &dto); err != nil {
		return entity.PitchDeck{}, err
	}

	return dto.toEntity(), nil
}

func (c *PitchDecksClient) Delete(ctx context.Context, deckID int64) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}

	if err := requireID(deckID, "pitch deck"); err != nil {
		return err
	}

	return c.delete(ctx, fmt.Sprintf("/pitchdecks/%d", deckID))
}

// Download fetches the deck file. The content type comes from the response
// header when present, otherwise from sniffing the bytes, since some backend
// deployments serve everything as application/octet-stream.
func (c *PitchDecksClient) Download(ctx context.Context, deckID int64) ([]byte, string, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, "", err
	}

	if err := requireID(deckID, "pitch deck"); err != nil {
		return nil, "", err
	}

	endpoint := c.endpointURL(fmt.Sprintf("/pitchdecks/download/%d", deckID), nil)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", domain.WrapError(err, errcodes.BackendUnavailable, "backend request failed")
	}

	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxPitchDeckSize))
	if err != nil {
		return nil, "", domain.WrapError(err, errcodes.BackendUnavailable, "reading pitch deck body failed")
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(content).String()
	}

	return content, contentType, nil
}
