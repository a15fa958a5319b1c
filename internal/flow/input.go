package flow

// Input is one turn's worth of user input: UserText, Resume or Restart.
type Input interface{ isInput() }

// UserText is anything the visitor typed or a quick-reply option they tapped.
type UserText struct{ Text string }

// Resume is sent by the widget when the waiting media finishes playing.
type Resume struct{}

// Restart is sent by the widget's restart button.
type Restart struct{}

func (UserText) isInput() {}
func (Resume) isInput()   {}
func (Restart) isInput()  {}

func Text(s string) Input { return UserText{Text: s} }
