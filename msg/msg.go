/*
 * Copyright (c) 2025 66f94eae
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

package msg

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/66f94eae/bark-go/encryption"
)

// Interruption levels understood by the app.
const (
	LevelActive        = "active"
	LevelTimeSensitive = "timeSensitive"
	LevelPassive       = "passive"
)

const (
	defaultTitle = "Notification"
	defaultSound = "chime.caf"
	defaultIcon  = "https://github.com/66f94eae/bark-dev/raw/main/bot.jpg"

	// encryptedBody replaces the visible alert body when the real body
	// travels in the ciphertext field.
	encryptedBody = "NoContent"
)

// Msg is a push notification message, read-only once built. Serialize is
// repeatable and, apart from a freshly generated IV, yields identical bytes
// for identical state.
type Msg struct {
	title     string
	body      string
	level     string
	badge     *uint64
	autoCopy  *uint8
	copyText  string
	sound     string
	icon      string
	group     string
	isArchive *uint8
	url       string
	iv        string
	key       string
	family    encryption.Family
	mode      encryption.Mode
	familySet bool
	modeSet   bool
}

// Builder assembles a Msg. Setters record the first configuration error and
// Build reports it; a Builder is consumed exactly once.
type Builder struct {
	m   Msg
	err error
}

// New returns a builder for a message with the given title and body.
func New(title, body string) *Builder {
	return &Builder{
		m: Msg{
			title: title,
			body:  body,
			level: LevelActive,
			sound: defaultSound,
			icon:  defaultIcon,
		},
	}
}

// WithBody returns a builder for a message with the default title.
func WithBody(body string) *Builder {
	return New(defaultTitle, body)
}

// Level sets the interruption level: active, timeSensitive or passive.
func (b *Builder) Level(level string) *Builder {
	if b.err != nil {
		return b
	}
	switch strings.ToLower(level) {
	case "active":
		b.m.level = LevelActive
	case "timesensitive":
		b.m.level = LevelTimeSensitive
	case "passive":
		b.m.level = LevelPassive
	default:
		b.err = fmt.Errorf("invalid interruption level: %s", level)
	}
	return b
}

// Badge sets the badge count; zero or negative clears it.
func (b *Builder) Badge(badge int) *Builder {
	if badge > 0 {
		v := uint64(badge)
		b.m.badge = &v
	} else {
		b.m.badge = nil
	}
	return b
}

// AutoCopy sets the auto-copy flag. The app only understands 0; any other
// value clears the flag.
func (b *Builder) AutoCopy(autoCopy int) *Builder {
	if autoCopy == 0 {
		v := uint8(0)
		b.m.autoCopy = &v
	} else {
		b.m.autoCopy = nil
	}
	return b
}

// Copy sets the text copied instead of the whole body; blank clears it.
func (b *Builder) Copy(copy string) *Builder {
	if strings.TrimSpace(copy) == "" {
		b.m.copyText = ""
	} else {
		b.m.copyText = copy
	}
	return b
}

// Sound sets the ringtone.
func (b *Builder) Sound(sound string) *Builder {
	b.m.sound = sound
	return b
}

// Icon sets a custom icon URL; blank clears it.
func (b *Builder) Icon(icon string) *Builder {
	if strings.TrimSpace(icon) == "" {
		b.m.icon = ""
	} else {
		b.m.icon = icon
	}
	return b
}

// Group sets the thread identifier used to group notifications.
func (b *Builder) Group(group string) *Builder {
	b.m.group = group
	return b
}

// Archive sets the archive flag. The app only understands 1; any other value
// clears the flag.
func (b *Builder) Archive(isArchive int) *Builder {
	if isArchive == 1 {
		v := uint8(1)
		b.m.isArchive = &v
	} else {
		b.m.isArchive = nil
	}
	return b
}

// URL sets the link opened when the notification is tapped; blank clears it.
func (b *Builder) URL(url string) *Builder {
	if strings.TrimSpace(url) == "" {
		b.m.url = ""
	} else {
		b.m.url = url
	}
	return b
}

// IV sets the initialization vector; blank clears it.
func (b *Builder) IV(iv string) *Builder {
	if strings.TrimSpace(iv) == "" {
		b.m.iv = ""
	} else {
		b.m.iv = iv
	}
	return b
}

// EncType selects the cipher family: aes128, aes192 or aes256. It can only
// be set once.
func (b *Builder) EncType(family string) *Builder {
	if b.err != nil {
		return b
	}
	if b.m.familySet {
		b.err = errors.New("encrypt type can only be set once")
		return b
	}
	f, err := encryption.ParseFamily(family)
	if err != nil {
		b.err = err
		return b
	}
	b.m.family = f
	b.m.familySet = true
	return b
}

// EncMode selects the block mode: cbc, ecb or gcm. It can only be set once.
func (b *Builder) EncMode(mode string) *Builder {
	if b.err != nil {
		return b
	}
	if b.m.modeSet {
		b.err = errors.New("encrypt mode can only be set once")
		return b
	}
	m, err := encryption.ParseMode(mode)
	if err != nil {
		b.err = err
		return b
	}
	b.m.mode = m
	b.m.modeSet = true
	return b
}

// Key sets the encryption key shared with the app.
func (b *Builder) Key(key string) *Builder {
	b.m.key = key
	return b
}

// Build validates the configuration and returns the finished message. When
// the mode is ecb or gcm and no IV was set, a random one is generated here so
// the message serializes the same way every time.
func (b *Builder) Build() (*Msg, error) {
	if b.err != nil {
		return nil, b.err
	}
	m := b.m

	if m.familySet != m.modeSet {
		return nil, errors.New("encrypt type and mode must both be set")
	}
	if m.encrypted() {
		if m.iv == "" && m.mode != encryption.CBC {
			iv, err := encryption.GenerateIV()
			if err != nil {
				return nil, err
			}
			m.iv = iv
		}
		if m.key == "" {
			return nil, errors.New("encrypt key must be set")
		}
		if len(m.key) != encryption.KeyLength {
			return nil, fmt.Errorf("encrypt key must be %d characters, got %d", encryption.KeyLength, len(m.key))
		}
		if len(m.iv) != encryption.IVLength {
			return nil, fmt.Errorf("iv must be %d characters, got %d", encryption.IVLength, len(m.iv))
		}
	}
	return &m, nil
}

func (m *Msg) encrypted() bool {
	return m.familySet && m.modeSet
}

// IV returns the initialization vector the message encrypts with, generated
// or configured. Empty when encryption is off and no IV was set.
func (m *Msg) IV() string {
	return m.iv
}

type alert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// aps field order is part of the envelope contract; receivers log raw JSON.
type aps struct {
	MutableContent    int     `json:"mutable-content"`
	Category          string  `json:"category"`
	InterruptionLevel string  `json:"interruption-level"`
	Badge             *uint64 `json:"badge,omitempty"`
	Sound             string  `json:"sound,omitempty"`
	ThreadID          string  `json:"thread-id,omitempty"`
	Alert             alert   `json:"alert"`
	Icon              string  `json:"icon,omitempty"`
	AutoCopy          *uint8  `json:"autoCopy,omitempty"`
	IsArchive         *uint8  `json:"isArchive,omitempty"`
	Copy              string  `json:"copy,omitempty"`
	URL               string  `json:"url,omitempty"`
	IV                string  `json:"iv,omitempty"`
	Ciphertext        string  `json:"ciphertext,omitempty"`
}

type envelope struct {
	Aps aps `json:"aps"`
}

type encryptedPayload struct {
	Body string `json:"body"`
}

// Serialize renders the message as the HTTP body sent to the gateway. With
// encryption configured the visible alert body is replaced by a placeholder
// and the real body travels in the ciphertext field.
func (m *Msg) Serialize() ([]byte, error) {
	if !m.encrypted() {
		return m.envelope("")
	}

	plaintext, err := json.Marshal(encryptedPayload{Body: m.body})
	if err != nil {
		return nil, err
	}
	ciphertext, err := encryption.Encrypt(m.family, m.mode, []byte(m.key), []byte(m.iv), plaintext)
	if err != nil {
		return nil, fmt.Errorf("error encrypting message: %w", err)
	}
	return m.envelope(base64.StdEncoding.EncodeToString(ciphertext))
}

func (m *Msg) envelope(ciphertext string) ([]byte, error) {
	a := aps{
		MutableContent:    1,
		Category:          "myNotificationCategory",
		InterruptionLevel: m.level,
		Badge:             m.badge,
		Sound:             m.sound,
		ThreadID:          m.group,
		Alert:             alert{Title: m.title, Body: m.body},
		Icon:              m.icon,
		AutoCopy:          m.autoCopy,
		IsArchive:         m.isArchive,
		Copy:              m.copyText,
		URL:               m.url,
		IV:                m.iv,
		Ciphertext:        ciphertext,
	}
	if ciphertext != "" {
		a.Alert.Body = encryptedBody
	}
	return json.Marshal(envelope{Aps: a})
}
