package ui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	ColorSuccess   = lipgloss.Color("#00D26A") // green: success, buys
	ColorWarning   = lipgloss.Color("#FFB800") // yellow: warnings, listings
	ColorError     = lipgloss.Color("#FF4444") // red: errors
	ColorAddress   = lipgloss.Color("#00B4D8") // cyan: mints, wallets, ids
	ColorValue     = lipgloss.Color("#FFFFFF") // white bold: SOL amounts
	ColorMeta      = lipgloss.Color("#555555") // dim gray: tokens, timestamps
	ColorBorder    = lipgloss.Color("#1E3A5F") // dark blue: UI chrome
	ColorMoon      = lipgloss.Color("#C8B6FF") // lavender: endpoint and group names
	ColorHighlight = lipgloss.Color("#F15BB5") // pink: headers, selected rows
)

// Base styles.
var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	StyleAddress = lipgloss.NewStyle().Foreground(ColorAddress)
	StyleValue   = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	StyleMeta    = lipgloss.NewStyle().Foreground(ColorMeta)
	StyleName    = lipgloss.NewStyle().Foreground(ColorMoon).Bold(true)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true).
			Underline(true)

	StyleSelected = lipgloss.NewStyle().
			Background(ColorHighlight).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorMoon).
			Bold(true).
			MarginBottom(1)
)

// Banner returns the moon banner for the given version.
func Banner(version string) string {
	art := `
   ┌┬┐┌─┐┌─┐┌┐┌
   ││││ ││ ││││
   ┴ ┴└─┘└─┘┘└┘`

	tagline := StyleMeta.Render("   Solana NFT & DeFi analytics  ☾  v" + version)
	return StyleName.Render(art) + "\n" + tagline + "\n"
}

// Success formats a success message.
func Success(msg string) string { return StyleSuccess.Render("✓ " + msg) }

// Warn formats a warning message.
func Warn(msg string) string { return StyleWarning.Render("⚠ " + msg) }

// Err formats an error message.
func Err(msg string) string { return StyleError.Render("✗ " + msg) }

// Info formats a neutral status line.
func Info(msg string) string { return StyleAddress.Render("ℹ " + msg) }

// Addr formats an address, mint or collection id.
func Addr(a string) string { return StyleAddress.Render(a) }

// Val formats a value.
func Val(v string) string { return StyleValue.Render(v) }

// Meta formats metadata text.
func Meta(m string) string { return StyleMeta.Render(m) }

// Name formats an endpoint or group name.
func Name(n string) string { return StyleName.Render(n) }

// TruncateAddr shortens a base58 address for display: 7xKX…gAsU.
func TruncateAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:4] + "…" + addr[len(addr)-4:]
}
