/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package dialog

import "testing"

func TestIsOnlyEmoji(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"😀😀", true},
		{"  🚀 ", true},
		{"👍🏽", true},
		{"❤️", true},
		{"👩\u200d💻", true},
		{"🇩🇪", true},
		{"😀 nice", false},
		{"ok", false},
		{"1", false},
		{"", false},
		{"   ", false},
		{"😀!", false},
	}
	for _, c := range cases {
		if got := IsOnlyEmoji(c.in); got != c.want {
			t.Fatalf("IsOnlyEmoji(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
