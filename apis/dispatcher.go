/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Dispatcher parses and executes one text command against a registry scope.
//
// Grammar: "<get|set> <id>.<member>[.<member>...][=<value>]". Tokens are
// whitespace separated; no quoting or escaping is supported. The value side
// of a set may be empty text, which is a legal value.
//
// Execute returns the retrieved (or just-set) value's text form. All parse
// and resolution failures are expected, recoverable conditions returned as
// errors; the dispatcher must be safe to call repeatedly with hostile or
// typo-ridden input and must never terminate the process.
type Dispatcher interface {
	// Execute runs one command and returns the resulting value text.
	Execute(cmd string) (string, error)
}
