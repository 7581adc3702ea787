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

package log

import (
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// traceFields marshals the ids of a span context inline into an entry.
type traceFields struct {
	spanCtx trace.SpanContext
}

func (f traceFields) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("trace_id", f.spanCtx.TraceID().String())
	enc.AddString("span_id", f.spanCtx.SpanID().String())
	if f.spanCtx.TraceFlags() != 0 {
		enc.AddUint8("trace_flags", uint8(f.spanCtx.TraceFlags()))
	}
	return nil
}
