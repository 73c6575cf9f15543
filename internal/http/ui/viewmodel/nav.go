package viewmodel

// NavItem is one entry of the bottom navigation.
type NavItem struct {
	Page   string
	Label  string
	Icon   string
	Active bool
}

// Chat feeds the chat widget.
type Chat struct {
	Greeting string
	User     *User
}
