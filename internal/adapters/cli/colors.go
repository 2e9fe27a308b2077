package cli

import "github.com/fatih/color"

func channelLabel(channel string) string {
	switch channel {
	case "online":
		return color.New(color.FgHiGreen).Sprint(channel)
	case "offline":
		return color.New(color.FgYellow).Sprint(channel)
	default:
		return channel
	}
}

func actionLabel(action string) string {
	switch action {
	case "executed", "flushed":
		return color.New(color.FgHiGreen).Sprint(action)
	case "failed":
		return color.New(color.FgRed).Sprint(action)
	case "buffered":
		return color.New(color.FgCyan).Sprint(action)
	default:
		return action
	}
}
