package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary     = lipgloss.Color("#00E5FF") // Cyan: completed stars, primary accent
	colorAccent      = lipgloss.Color("#FF6B00") // Orange: links and link mode
	colorGold        = lipgloss.Color("#FFD700") // Gold: developing stars
	colorSuccess     = lipgloss.Color("#00E676") // Green: confirmations
	colorDanger      = lipgloss.Color("#FF5252") // Red: errors
	colorMuted       = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight  = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite       = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorBrightWhite = lipgloss.Color("#FFFFFF") // Pure white: emphatic text
	colorSurface     = lipgloss.Color("#1E1E2E") // Dark surface: status bar bg
	colorSurfaceDim  = lipgloss.Color("#181825") // Darkest surface: footer bg
	colorVoid        = lipgloss.Color("#020204") // Field background
)

// Status bar styles.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleStatusBrand = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorPrimary).
				Bold(true)

	styleStatusValue = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorWhite)

	styleStatusMuted = lipgloss.NewStyle().
				Background(colorSurface).
				Foreground(colorMutedLight)

	styleStatusLink = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(colorVoid).
			Bold(true).
			Padding(0, 1)

	styleStatusReadOnly = lipgloss.NewStyle().
				Background(colorGold).
				Foreground(colorVoid).
				Bold(true).
				Padding(0, 1)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMuted)

	styleFooterKey = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorPrimary).
			Bold(true)

	styleFooterDesc = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMutedLight)

	styleFooterSep = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMuted)
)

// Detail panel styles.
var (
	styleDetailBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorMuted).
				Padding(0, 1)

	styleDetailTitle = lipgloss.NewStyle().
				Foreground(colorBrightWhite).
				Bold(true)

	styleDetailLabel = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleDetailDim = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleDetailText = lipgloss.NewStyle().
			Foreground(colorWhite)

	styleDetailSep = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Toast styles.
var (
	styleToast = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorSuccess).
			Padding(0, 1)

	styleToastInfo = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorPrimary).
			Padding(0, 1)

	styleToastError = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorDanger).
			Bold(true).
			Padding(0, 1)
)

// Tooltip and prompt styles.
var (
	styleTooltip = lipgloss.NewStyle().
			Background(lipgloss.Color("#141428")).
			Foreground(colorBrightWhite).
			Bold(true)

	stylePromptLabel = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)
)
