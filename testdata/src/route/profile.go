package route

import "github.com/mpyw/mvvm"

type ProfileViewModel struct{ mvvm.ViewModelBase }

type ProfileView struct {
	mvvm.View[*ProfileViewModel]

	//mvvm:parameter rest
	Path string
}
