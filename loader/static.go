package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/erraggy/oastest"
	"github.com/erraggy/oastest/internal/pathutil"
	"github.com/erraggy/oastest/oaserrors"
	"go.yaml.in/yaml/v4"
)

// staticSourceErrMsg is the user-facing message for any failure to read or
// parse a static schema, pointing at the path setting as the likely cause.
const staticSourceErrMsg = "Unable to read the schema file. Please make sure the path setting is correct."

// StaticSource loads a schema from a file path or an http(s) URL. Content
// is parsed as JSON when the path contains ".json", otherwise as YAML.
type StaticSource struct {
	// Path is the file path or URL of the schema document.
	Path string

	// HTTPClient is used for URL paths. If nil, a default client with a
	// 30-second timeout is created.
	HTTPClient *http.Client

	// UserAgent is sent with URL requests. Defaults to oastest.UserAgent().
	UserAgent string

	// Logger is the structured logger for debug output.
	// If nil, logging is disabled.
	Logger oastest.Logger
}

// NewStaticSource returns a StaticSource reading from path, which may be a
// file path or an http(s) URL.
func NewStaticSource(path string) *StaticSource {
	return &StaticSource{Path: path}
}

// log returns the configured logger, or a no-op logger if none is set.
func (s *StaticSource) log() oastest.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return oastest.NopLogger{}
}

// LoadSchema reads and parses the document at Path. Any read or parse
// failure is reported as a *oaserrors.ConfigError naming the path, since a
// bad path or malformed file is a setup problem rather than a runtime one.
func (s *StaticSource) LoadSchema() (map[string]any, error) {
	s.log().Debug("fetching static schema", "path", s.Path)

	var (
		content     []byte
		contentType string
		err         error
	)
	if pathutil.IsURL(s.Path) {
		content, contentType, err = s.fetch()
	} else {
		content, err = os.ReadFile(s.Path)
	}
	if err != nil {
		return nil, s.configError(err)
	}

	doc, err := s.decode(content, contentType)
	if err != nil {
		return nil, s.configError(err)
	}
	return doc, nil
}

func (s *StaticSource) configError(cause error) error {
	return &oaserrors.ConfigError{
		Setting: "path",
		Value:   s.Path,
		Message: staticSourceErrMsg,
		Cause:   cause,
	}
}

func (s *StaticSource) decode(content []byte, contentType string) (map[string]any, error) {
	var doc map[string]any
	if strings.Contains(s.Path, ".json") || strings.Contains(strings.ToLower(contentType), "json") {
		if err := json.Unmarshal(content, &doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *StaticSource) fetch() ([]byte, string, error) {
	client := s.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return httpGet(client, s.UserAgent, s.Path)
}

// httpGet fetches url and returns the body and Content-Type header.
func httpGet(client *http.Client, userAgent, url string) ([]byte, string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("loader: failed to create request: %w", err)
	}
	if userAgent == "" {
		userAgent = oastest.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("loader: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("loader: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("loader: failed to read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// DefaultHTTPFetcher fetches http(s) $ref targets with a 30-second timeout
// and the module's User-Agent header. Pass it to WithHTTPFetcher to enable
// remote reference resolution.
func DefaultHTTPFetcher(url string) ([]byte, string, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	return httpGet(client, "", url)
}
