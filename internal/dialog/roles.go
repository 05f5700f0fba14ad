/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package dialog

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Role is the coarse classification of a speaker.
type Role int

const (
	RoleOther Role = iota
	RoleSelf
)

func (r Role) String() string {
	if r == RoleSelf {
		return "self"
	}
	return "other"
}

// Class is the list-item class the host styles each role with.
func (r Role) Class() string {
	if r == RoleSelf {
		return ClassSelf
	}
	return ClassOther
}

// selfKeywordsByLanguage lists first-person self-references. A speaker whose
// key equals one of these is the journal author.
var selfKeywordsByLanguage = map[string][]string{
	"Arabic":     {"أنا"},
	"Bengali":    {"আমি"},
	"Chinese":    {"我"},
	"Dutch":      {"ik"},
	"English":    {"me"},
	"Finnish":    {"minä", "mä"},
	"French":     {"moi"},
	"German":     {"ich"},
	"Greek":      {"εγώ"},
	"Hebrew":     {"אני"},
	"Hindi":      {"मैं"},
	"Indonesian": {"aku", "saya"},
	"Japanese":   {"私", "わたし"},
	"Korean":     {"나", "저"},
	"Latin":      {"ego"},
	"Malay":      {"saya", "aku"},
	"Norwegian":  {"jeg"},
	"Persian":    {"من"},
	"Polish":     {"ja"},
	"Portuguese": {"eu"},
	"Punjabi":    {"ਮੈਂ"},
	"Russian":    {"я"},
	"Spanish":    {"yo"},
	"Swedish":    {"jag"},
	"Tagalog":    {"ako"},
	"Thai":       {"ฉัน", "ผม"},
	"Urdu":       {"میں"},
	"Vietnamese": {"tôi", "mình"},
}

var selfSet = func() map[string]struct{} {
	m := map[string]struct{}{}
	for _, words := range selfKeywordsByLanguage {
		for _, w := range words {
			m[Key(w)] = struct{}{}
		}
	}
	return m
}()

// SelfKeywords returns the distinct self keywords in sorted order.
func SelfKeywords() []string {
	out := make([]string, 0, len(selfSet))
	for k := range selfSet {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Key is the lookup form of a speaker name: NFC-normalised and lower-cased.
func Key(speaker string) string {
	return strings.ToLower(norm.NFC.String(speaker))
}

// IsSelfKeyword reports whether the speaker is a known self-reference.
func IsSelfKeyword(speaker string) bool {
	_, ok := selfSet[Key(speaker)]
	return ok
}

// Roles maps speaker keys to roles for one block.
type Roles map[string]Role

// Of returns the role for a speaker name, RoleOther when unknown.
func (r Roles) Of(speaker string) Role {
	if role, ok := r[Key(speaker)]; ok {
		return role
	}
	return RoleOther
}

// Classify assigns roles to the distinct speaker keys of a block, given in order
// of first appearance. If any speaker is a self keyword, membership alone decides.
// Otherwise the second speaker to appear is self and all others are other.
func Classify(speakers []string) Roles {
	roles := make(Roles, len(speakers))
	known := false
	for _, s := range speakers {
		if IsSelfKeyword(s) {
			known = true
			break
		}
	}
	for _, s := range speakers {
		k := Key(s)
		if _, dup := roles[k]; dup {
			continue
		}
		switch {
		case known && IsSelfKeyword(k):
			roles[k] = RoleSelf
		case !known && len(roles) == 1:
			roles[k] = RoleSelf
		default:
			roles[k] = RoleOther
		}
	}
	return roles
}
