package keys

import "sort"

// HelpCategory organizes keys by function
type HelpCategory string

const (
	HelpCategoryInput   HelpCategory = "Input"
	HelpCategoryWindows HelpCategory = "Windows"
	HelpCategoryOther   HelpCategory = "Other"
	HelpCategorySpecial HelpCategory = "Special" // Not shown in the key overview
	HelpCategoryUnknown HelpCategory = "Uncategorized"
)

// KeyHelpInfo adds extended help information to key bindings
type KeyHelpInfo struct {
	Description string
	Category    HelpCategory
}

// KeyHelpMap maps KeyNames to their help information
var KeyHelpMap = map[KeyName]KeyHelpInfo{
	KeySubmit:      {Description: "Send the input line or run a /command", Category: HelpCategoryInput},
	KeyComplete:    {Description: "Complete a command name or argument, press again to cycle", Category: HelpCategoryInput},
	KeyClearInput:  {Description: "Clear the input line", Category: HelpCategoryInput},
	KeyHistoryUp:   {Description: "Recall the previous input line", Category: HelpCategoryInput},
	KeyHistoryDown: {Description: "Recall the next input line", Category: HelpCategoryInput},

	KeyPrevWindow: {Description: "Switch to the previous window", Category: HelpCategoryWindows},
	KeyNextWindow: {Description: "Switch to the next window", Category: HelpCategoryWindows},
	KeyScrollUp:   {Description: "Scroll the window up", Category: HelpCategoryWindows},
	KeyScrollDown: {Description: "Scroll the window down", Category: HelpCategoryWindows},
	KeyWindow1:    {Description: "Jump to window 1 (alt+1 through alt+9)", Category: HelpCategoryWindows},

	KeyHelp: {Description: "Show command help in the console", Category: HelpCategoryOther},
	KeyQuit: {Description: "Quit the client", Category: HelpCategoryOther},

	KeyWindow2: {Category: HelpCategorySpecial},
	KeyWindow3: {Category: HelpCategorySpecial},
	KeyWindow4: {Category: HelpCategorySpecial},
	KeyWindow5: {Category: HelpCategorySpecial},
	KeyWindow6: {Category: HelpCategorySpecial},
	KeyWindow7: {Category: HelpCategorySpecial},
	KeyWindow8: {Category: HelpCategorySpecial},
	KeyWindow9: {Category: HelpCategorySpecial},
}

// GetKeyHelp returns the help information for a key
func GetKeyHelp(keyName KeyName) KeyHelpInfo {
	info, exists := KeyHelpMap[keyName]
	if !exists {
		return KeyHelpInfo{
			Description: "No description",
			Category:    HelpCategoryUnknown,
		}
	}
	return info
}

// GetKeysInCategory returns the keys in a category, in declaration order.
func GetKeysInCategory(category HelpCategory) []KeyName {
	var keys []KeyName
	for k, info := range KeyHelpMap {
		if info.Category == category {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// HelpCategoryOrder is the order categories appear in the key overview.
var HelpCategoryOrder = []HelpCategory{HelpCategoryInput, HelpCategoryWindows, HelpCategoryOther}

// HelpLines renders the key overview shown by the help key.
func HelpLines() []string {
	var lines []string
	lines = append(lines, "Keys:")
	for _, category := range HelpCategoryOrder {
		lines = append(lines, "  "+string(category)+":")
		for _, k := range GetKeysInCategory(category) {
			h := GlobalkeyBindings[k].Help()
			lines = append(lines, "    "+padRight(h.Key, 8)+GetKeyHelp(k).Description)
		}
	}
	return lines
}

func padRight(s string, width int) string {
	for n := len([]rune(s)); n < width; n++ {
		s += " "
	}
	return s
}
