package out

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"launchdash/internal/modules/launches/domain"
	launchesout "launchdash/internal/modules/launches/port/out"
	apperrors "launchdash/internal/platform/errors"
)

// CSVTableReader reads a launch table over HTTP(S) or from the local
// filesystem. It makes exactly one attempt per call.
type CSVTableReader struct {
	client  *http.Client
	timeout time.Duration
}

func NewCSVTableReader(client *http.Client, timeout time.Duration) launchesout.TableReader {
	if client == nil {
		client = http.DefaultClient
	}
	return &CSVTableReader{client: client, timeout: timeout}
}

func (r *CSVTableReader) Read(ctx context.Context, location string) (domain.RawTable, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return domain.RawTable{}, fmt.Errorf("%w: dataset location is required", apperrors.ErrInvalidInput)
	}
	if isRemote(location) {
		return r.readRemote(ctx, location)
	}
	return readFile(location)
}

func (r *CSVTableReader) readRemote(ctx context.Context, url string) (domain.RawTable, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return domain.RawTable{}, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}
	return parse(resp.Body)
}

func readFile(path string) (domain.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.RawTable{}, fmt.Errorf("%w: dataset %s", apperrors.ErrNotFound, path)
		}
		return domain.RawTable{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (domain.RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return domain.RawTable{}, fmt.Errorf("%w: dataset has no header row", apperrors.ErrInvalidInput)
		}
		return domain.RawTable{}, fmt.Errorf("parse header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("parse rows: %w", err)
	}
	return domain.RawTable{Header: header, Rows: rows}, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
