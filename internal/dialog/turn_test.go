/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package dialog

import "testing"

func TestSplitTurnsKeepsMultilineStatements(t *testing.T) {
	got := SplitTurns(".Ben: Hi\nstill Ben\n.Anna: Hi back\n")
	want := []string{".Ben: Hi\nstill Ben", ".Anna: Hi back"}
	if len(got) != len(want) {
		t.Fatalf("SplitTurns = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("turn %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitTurnsSingleSegment(t *testing.T) {
	got := SplitTurns("  .Anna: Hello there  ")
	if len(got) != 1 || got[0] != ".Anna: Hello there" {
		t.Fatalf("SplitTurns = %q", got)
	}
}

func TestSplitTurnsNormalisesCRLF(t *testing.T) {
	got := SplitTurns(".A: x\r\n.B: y")
	if len(got) != 2 || got[1] != ".B: y" {
		t.Fatalf("SplitTurns = %q", got)
	}
}

func TestDissect(t *testing.T) {
	cases := []struct {
		in   string
		want Turn
		ok   bool
	}{
		{".Anna: Hello there", Turn{"Anna", "", "Hello there"}, true},
		{".  Anna  :   spaced  ", Turn{"Anna", "", "spaced"}, true},
		{".Anna (whispering): quiet", Turn{"Anna", "whispering", "quiet"}, true},
		{".Anna( loud ):HEY", Turn{"Anna", "loud", "HEY"}, true},
		{".Anna: time is 10:30 (roughly)", Turn{"Anna", "", "time is 10:30 (roughly)"}, true},
		{".Anna: first\nsecond", Turn{"Anna", "", "first\nsecond"}, true},
		{".Anna:", Turn{"Anna", "", ""}, true},
		{".Anna says nothing", Turn{}, false},
		{"Anna: no leading dot", Turn{}, false},
		{".: no speaker", Turn{}, false},
		{".   : blank speaker", Turn{}, false},
		{"", Turn{}, false},
	}
	for _, c := range cases {
		got, ok := Dissect(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("Dissect(%q) = %+v, %v; want %+v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseDropsInvalidTurns(t *testing.T) {
	turns := Parse(".Ben: Hi\n.nonsense\n.Anna: Hi back")
	if len(turns) != 2 {
		t.Fatalf("expected 2 valid turns, got %d: %+v", len(turns), turns)
	}
	if turns[1].Speaker != "Anna" {
		t.Fatalf("unexpected second turn: %+v", turns[1])
	}
}
