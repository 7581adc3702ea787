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

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFullPath(t *testing.T) {
	tests := []struct {
		base, name, want string
	}{
		{base: "", name: "a.json", want: "a.json"},
		{base: "exports", name: "a.json", want: "exports/a.json"},
		{base: "/exports/", name: "/a.json", want: "exports/a.json"},
		{base: "x/y", name: "z/a.json", want: "x/y/z/a.json"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, getFullPath(tt.base, tt.name))
	}
}

func TestNewStorage_Unsupported(t *testing.T) {
	_, err := NewStorage(context.Background(), &Storage{Provider: "gcs"})
	assert.Error(t, err)
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	sp, err := NewStorage(ctx, &Storage{Provider: StorageLocal, BasePath: dir})
	require.NoError(t, err)

	loc, err := sp.PutObject(ctx, "employees/employees-1.json", []byte("[]"), "application/json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "employees", "employees-1.json"), loc)

	got, err := sp.GetObject(ctx, "employees/employees-1.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, sp.Delete(ctx, "employees/employees-1.json"))
	_, err = os.Stat(loc)
	assert.True(t, os.IsNotExist(err))
	require.NoError(t, sp.Delete(ctx, "employees/employees-1.json"))
}

func TestLocalStorage_RejectsEscape(t *testing.T) {
	dir := t.TempDir()
	sp, err := NewStorage(context.Background(), &Storage{Provider: StorageLocal, BasePath: dir})
	require.NoError(t, err)

	_, err = sp.PutObject(context.Background(), "../../etc/passwd", []byte("x"), "")
	assert.Error(t, err)
}

func TestLocalStorage_CancelledContext(t *testing.T) {
	sp, err := NewStorage(context.Background(), &Storage{Provider: StorageLocal, BasePath: t.TempDir()})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sp.PutObject(ctx, "a.json", []byte("[]"), "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewStorage_Minio(t *testing.T) {
	sp, err := NewStorage(context.Background(), &Storage{
		Provider:  StorageMinio,
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "exports",
	})
	require.NoError(t, err)
	assert.IsType(t, &MinioStorage{}, sp)
}

func TestNewStorage_S3(t *testing.T) {
	sp, err := NewStorage(context.Background(), &Storage{
		Provider:  StorageS3,
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
		Region:    "us-east-1",
		Bucket:    "exports",
	})
	require.NoError(t, err)
	assert.IsType(t, &S3Storage{}, sp)
}
