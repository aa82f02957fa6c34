package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
	"github.com/pterm/pterm"
)

const bannerText = `
██╗      █████╗ ███╗   ██╗ ██████╗ ███████╗ █████╗ ██╗      █████╗ ██████╗ ██╗   ██╗
██║     ██╔══██╗████╗  ██║██╔════╝ ██╔════╝██╔══██╗██║     ██╔══██╗██╔══██╗╚██╗ ██╔╝
██║     ███████║██╔██╗ ██║██║  ███╗███████╗███████║██║     ███████║██████╔╝ ╚████╔╝
██║     ██╔══██║██║╚██╗██║██║   ██║╚════██║██╔══██║██║     ██╔══██║██╔══██╗  ╚██╔╝
███████╗██║  ██║██║ ╚████║╚██████╔╝███████║██║  ██║███████╗██║  ██║██║  ██║   ██║
╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝
 @fr4nk3nst1ner
`

// ColorizeText applies a random colour gradient to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	steps := float32(len(chars))
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, steps, float32(i%half), endColor).Sprint(ch))
	}
	return b.String()
}

// PrintBanner displays the application banner
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}

// ColorizeSalary colours a formatted average salary by monthly band in roubles.
func ColorizeSalary(average *float64) string {
	formatted := utils.FormatSalary(average)
	if average == nil {
		return pterm.Red(formatted)
	}

	switch {
	case *average >= 300000:
		return pterm.Green(formatted)
	case *average >= 200000:
		return pterm.LightGreen(formatted)
	case *average >= 100000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
