package dispose

import (
	"time"

	"github.com/mpyw/mvvm"
)

type ClockViewModel struct { // want "ClockViewModel holds disposable resources but does not implement Close"
	mvvm.ObservableObject
	ticker *time.Ticker
}

type HomeViewModel struct {
	mvvm.ViewModelBase
	ticker *time.Ticker
}

//mvvm:autodispose
type ManagedViewModel struct {
	mvvm.ObservableObject
	ticker *time.Ticker
}
