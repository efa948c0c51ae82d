package viewmodelbase

import "github.com/mpyw/mvvm"

type ProfileViewModel struct{ name string } // want "view-model ProfileViewModel must embed mvvm.ViewModelBase"

type SettingsViewModel struct {
	mvvm.ViewModelBase
}

//mvvm:observableObject
type LegacyViewModel struct{}

type Profile struct{ name string }
