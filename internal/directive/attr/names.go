package attr

// Canonical attribute names understood by the rules. Short aliases are
// listed next to the name they stand for.
//
// Names start with a lower-case letter so gofmt treats the comments as
// directives and leaves them in place.
const (
	ObservableObject = "observableObject"
	Abstract         = "abstract"

	RelayCommand = "relayCommand"
	Command      = "command"
	NoCommand    = "nocommand"

	Observable        = "observableProperty"
	ObservableShort   = "observable"
	NotifyFor         = "notifyPropertyChangedFor"
	NotifyForShort    = "notify"
	Parameter         = "parameter"
	ViewParameter     = "viewParameter"
	Page              = "page"
	Key               = "key"
	ViewModelKeyAlias = "viewModelDefinition"
	AutoDispose       = "autodispose"
)
