// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mustafaazad03/rbac-ui/internal/engine/model"
	"github.com/mustafaazad03/rbac-ui/internal/engine/repo"
	"github.com/mustafaazad03/rbac-ui/pkg/cache"
	"github.com/mustafaazad03/rbac-ui/pkg/cron"
	"github.com/mustafaazad03/rbac-ui/pkg/log"
	"github.com/mustafaazad03/rbac-ui/pkg/metrics"
	"github.com/mustafaazad03/rbac-ui/pkg/retry"
	"github.com/mustafaazad03/rbac-ui/pkg/storage"
)

const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"

	ExportJobName = "employees-export"
	exportSheet   = "Employees"
	sinkDownload  = "download"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrSinkNotConfigured = errors.New("export sink not configured")
)

var exportHeader = []any{"ID", "Employee ID", "Name", "Email", "Role", "Department", "Status", "Teams", "Type", "Avatar"}

// ExportConf is the export section of the config.
type ExportConf struct {
	// Format of scheduled exports.
	Format string `mapstructure:"format"`
	// Prefix of objects written to the sink.
	Prefix string `mapstructure:"prefix"`
	// Schedule is a cron spec; empty disables scheduled exports.
	Schedule string `mapstructure:"schedule"`
	// CacheBytes bounds the serialized snapshot cache.
	CacheBytes int `mapstructure:"cacheBytes"`
	// Retries is the number of attempts of a sink write.
	Retries int `mapstructure:"retries"`
	// RetryDelay is the wait in milliseconds after the first failed write.
	RetryDelay int `mapstructure:"retryDelay"`
	// RetryMaxDelay caps the doubling wait. A value not above RetryDelay
	// keeps the wait fixed.
	RetryMaxDelay int `mapstructure:"retryMaxDelay"`
	// Timezone the schedule is evaluated in, an IANA name. Empty means local.
	Timezone string `mapstructure:"timezone"`
}

func (c *ExportConf) SetDefaults() {
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if c.Prefix == "" {
		c.Prefix = "exports"
	}
	if c.Retries <= 0 {
		c.Retries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 200
	}
	if c.RetryMaxDelay == 0 {
		c.RetryMaxDelay = 5000
	}
}

// Backoff is the wait policy between sink write attempts.
func (c ExportConf) Backoff() retry.Backoff {
	delay := time.Duration(c.RetryDelay) * time.Millisecond
	if c.RetryMaxDelay <= c.RetryDelay {
		return retry.Fixed(delay)
	}
	return retry.Exponential(delay, time.Duration(c.RetryMaxDelay)*time.Millisecond)
}

// Location resolves Timezone.
func (c ExportConf) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// retrySinkWrite skips retries of failures a later attempt cannot fix.
func retrySinkWrite(err error) bool {
	return retry.Retryable(err) && !errors.Is(err, fs.ErrPermission) && !errors.Is(err, fs.ErrInvalid)
}

// ExportResult is one serialized snapshot of the employees collection.
type ExportResult struct {
	Format      string
	ContentType string
	FileName    string
	Revision    uint64
	Data        []byte
}

type ExportService struct {
	store    *repo.OrgStore
	cache    *cache.FastCache
	sink     storage.StorageProvider
	sinkName string
	conf     ExportConf
	metrics  *metrics.OrgMetrics
	now      func() time.Time
}

// NewExportService builds the service. A nil sink leaves only downloads.
func NewExportService(store *repo.OrgStore, c *cache.FastCache, sink storage.StorageProvider, sinkName string, conf ExportConf, m *metrics.OrgMetrics) *ExportService {
	conf.SetDefaults()
	if sink == nil {
		sinkName = "none"
	}
	return &ExportService{
		store:    store,
		cache:    c,
		sink:     sink,
		sinkName: sinkName,
		conf:     conf,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func ParseFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatXLSX:
		return format, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func contentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Export serializes the employees at the current revision for download.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportResult, error) {
	res, err := s.export(ctx, format)
	s.record(format, sinkDownload, err)
	return res, err
}

// export reuses serialized bytes while the revision is unchanged.
func (s *ExportService) export(ctx context.Context, format string) (*ExportResult, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := s.store.Snapshot()
	res := &ExportResult{
		Format:      format,
		ContentType: contentType(format),
		FileName:    "employees." + format,
		Revision:    snap.Revision,
	}
	key := fmt.Sprintf("%s:%d", format, snap.Revision)
	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			res.Data = data
			return res, nil
		}
	}

	var data []byte
	switch format {
	case FormatXLSX:
		data, err = EmployeesXLSX(snap.Employees)
	default:
		data, err = EmployeesJSON(snap.Employees)
	}
	if err != nil {
		log.Ctx(ctx).Errorw("export employees failed", "format", format, "error", err)
		return nil, fmt.Errorf("export employees failed: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(key, data)
	}
	res.Data = data
	return res, nil
}

// ExportTo writes a snapshot to the configured sink and returns where it
// was stored.
func (s *ExportService) ExportTo(ctx context.Context, format string) (string, error) {
	if s.sink == nil {
		s.record(format, s.sinkName, ErrSinkNotConfigured)
		return "", ErrSinkNotConfigured
	}
	res, err := s.export(ctx, format)
	if err != nil {
		s.record(format, s.sinkName, err)
		return "", err
	}
	name := path.Join(s.conf.Prefix, fmt.Sprintf("employees-%s.%s", s.now().Format("20060102T150405.000Z"), res.Format))
	var location string
	err = retry.Do(ctx, func(ctx context.Context) error {
		var perr error
		location, perr = s.sink.PutObject(ctx, name, res.Data, res.ContentType)
		if perr != nil {
			log.Ctx(ctx).Warnw("write export attempt failed", "sink", s.sinkName, "object", name, "error", perr)
		}
		return perr
	},
		retry.WithMaxAttempts(s.conf.Retries),
		retry.WithBackoff(s.conf.Backoff()),
		retry.WithJitter(),
		retry.WithRetryIf(retrySinkWrite),
	)
	s.record(res.Format, s.sinkName, err)
	if err != nil {
		log.Ctx(ctx).Errorw("write export failed", "sink", s.sinkName, "object", name, "error", err)
		return "", fmt.Errorf("write export failed: %w", err)
	}
	log.Ctx(ctx).Infow("success write export", "sink", s.sinkName, "location", location, "revision", res.Revision)
	return location, nil
}

// Schedule registers the periodic sink export when a schedule is set.
func (s *ExportService) Schedule(scheduler *cron.Scheduler) error {
	if s.conf.Schedule == "" {
		return nil
	}
	if s.sink == nil {
		return fmt.Errorf("export schedule %q: %w", s.conf.Schedule, ErrSinkNotConfigured)
	}
	if _, err := ParseFormat(s.conf.Format); err != nil {
		return err
	}
	return scheduler.AddFunc(ExportJobName, s.conf.Schedule, func(ctx context.Context) error {
		_, err := s.ExportTo(ctx, s.conf.Format)
		return err
	})
}

func (s *ExportService) record(format, sink string, err error) {
	if s.metrics != nil {
		s.metrics.RecordExport(format, sink, err)
	}
}

// EmployeesJSON is the employee list as a two-space indented array.
func EmployeesJSON(employees []model.Employee) ([]byte, error) {
	if employees == nil {
		employees = []model.Employee{}
	}
	return json.MarshalIndent(employees, "", "  ")
}

// EmployeesXLSX is a workbook with one Employees sheet and a header row.
func EmployeesXLSX(employees []model.Employee) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnw("close workbook failed", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, e := range employees {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{e.Id, e.EmployeeId, e.Name, e.Email, e.Role, e.Department, e.Status, strings.Join(e.Teams, ", "), e.Type, e.Avatar}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
