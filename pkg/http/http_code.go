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

package http

var (
	Failed                        = failed(500, "Request failed")
	RequestParameterParsingFailed = failed(5001, "Request parameter parsing failed")
	InternalError                 = failed(5000, "Internal error, please contact the administrator")

	// BadRequest 400
	BadRequest      = failed(4000, "Bad request")
	NotFound        = failed(4004, "Not found")
	InvalidArgument = failed(4001, "Invalid argument")

	// organization 404x
	EmployeeNotExist = failed(4041, "Employee does not exist")
	RoleNotExist     = failed(4042, "Role does not exist")
	TeamNotExist     = failed(4043, "Team does not exist")
	DialogNotExist   = failed(4044, "Dialog does not exist")
	FormNotExist     = failed(4045, "Form does not exist")

	// conflicts 409x
	EmailAlreadyExist = failed(4091, "Email already in use")
	LabelAlreadyExist = failed(4092, "Role label already exists")
	IdAlreadyExist    = failed(4093, "Id already exists")

	// ValidationFailed 422
	ValidationFailed = failed(4220, "Validation failed")

	// export 45xx
	UnsupportedFormat = failed(4501, "Unsupported export format")
	SinkNotConfigured = failed(4502, "Export sink is not configured")
	ExportFailed      = failed(4503, "Export failed")
)

var (
	Success = success(200, "Request Success")
)

func failed(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}

func success(code int, msg string) *Response {
	return &Response{
		Code:   code,
		Msg:    msg,
		Detail: nil,
	}
}
