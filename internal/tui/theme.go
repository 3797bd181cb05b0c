package tui

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed theme.toml
var themeTOML []byte

// ThemeColors is the palette every style derives from.
type ThemeColors struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
	Accent    string `toml:"accent"`
	Text      string `toml:"text"`
	Muted     string `toml:"muted"`
	Read      string `toml:"read"`
	Unread    string `toml:"unread"`
	Error     string `toml:"error"`
	Success   string `toml:"success"`
}

type themeFile struct {
	Colors ThemeColors `toml:"colors"`
}

// Brand colors, populated from the embedded theme at init and optionally
// overridden by LoadTheme.
var (
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	AccentColor    lipgloss.Color
	TextColor      lipgloss.Color
	MutedColor     lipgloss.Color
	ReadColor      lipgloss.Color
	UnreadColor    lipgloss.Color
	ErrorColor     lipgloss.Color
	SuccessColor   lipgloss.Color
)

// Styled components, rebuilt whenever the palette changes.
var (
	TitleStyle        lipgloss.Style
	HeaderStyle       lipgloss.Style
	FeedTitleStyle    lipgloss.Style
	AuthorStyle       lipgloss.Style
	TimeStyle         lipgloss.Style
	SelectedItemStyle lipgloss.Style
	ReadItemStyle     lipgloss.Style
	UnreadItemStyle   lipgloss.Style
	SeparatorStyle    lipgloss.Style
	PageNumberStyle   lipgloss.Style
	HelpStyle         lipgloss.Style
	StatusBarStyle    lipgloss.Style
	ErrorMessageStyle lipgloss.Style
	WarningStyle      lipgloss.Style
	SuccessStyle      lipgloss.Style
)

func init() {
	var tf themeFile
	// The embedded theme is part of the build; a parse failure here is a
	// programming error but the zero palette still renders.
	_ = toml.Unmarshal(themeTOML, &tf)
	applyTheme(tf.Colors)
}

// LoadTheme overrides the embedded palette with a user theme file. Missing
// file is not an error; a present but invalid file is.
func LoadTheme(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading theme: %w", err)
	}

	var tf themeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return fmt.Errorf("parsing theme %s: %w", path, err)
	}

	// Keep embedded defaults for any color the user left out.
	var base themeFile
	_ = toml.Unmarshal(themeTOML, &base)
	merged := base.Colors
	overrideColors(&merged, tf.Colors)
	applyTheme(merged)
	return nil
}

func overrideColors(dst *ThemeColors, src ThemeColors) {
	if src.Primary != "" {
		dst.Primary = src.Primary
	}
	if src.Secondary != "" {
		dst.Secondary = src.Secondary
	}
	if src.Accent != "" {
		dst.Accent = src.Accent
	}
	if src.Text != "" {
		dst.Text = src.Text
	}
	if src.Muted != "" {
		dst.Muted = src.Muted
	}
	if src.Read != "" {
		dst.Read = src.Read
	}
	if src.Unread != "" {
		dst.Unread = src.Unread
	}
	if src.Error != "" {
		dst.Error = src.Error
	}
	if src.Success != "" {
		dst.Success = src.Success
	}
}

func applyTheme(c ThemeColors) {
	PrimaryColor = lipgloss.Color(c.Primary)
	SecondaryColor = lipgloss.Color(c.Secondary)
	AccentColor = lipgloss.Color(c.Accent)
	TextColor = lipgloss.Color(c.Text)
	MutedColor = lipgloss.Color(c.Muted)
	ReadColor = lipgloss.Color(c.Read)
	UnreadColor = lipgloss.Color(c.Unread)
	ErrorColor = lipgloss.Color(c.Error)
	SuccessColor = lipgloss.Color(c.Success)

	TitleStyle = lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true)
	HeaderStyle = lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true)
	FeedTitleStyle = lipgloss.NewStyle().Foreground(UnreadColor).Bold(true)
	AuthorStyle = lipgloss.NewStyle().Foreground(AccentColor).Italic(true)
	TimeStyle = lipgloss.NewStyle().Foreground(MutedColor).Faint(true)
	SelectedItemStyle = lipgloss.NewStyle().Foreground(AccentColor).Bold(true)
	ReadItemStyle = lipgloss.NewStyle().Foreground(ReadColor)
	UnreadItemStyle = lipgloss.NewStyle().Foreground(TextColor)
	SeparatorStyle = lipgloss.NewStyle().Foreground(MutedColor)
	PageNumberStyle = lipgloss.NewStyle().Foreground(SecondaryColor)
	HelpStyle = lipgloss.NewStyle().Foreground(MutedColor).Italic(true)
	StatusBarStyle = lipgloss.NewStyle().Foreground(MutedColor).Padding(0, 1)
	ErrorMessageStyle = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(UnreadColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
}

const AppName = "tn"

// CompactLogo is the one-line brand mark used in the header bar.
const CompactLogo = "tn ›"
