package disabled

import "github.com/mpyw/mvvm"

type ProfileViewModel struct{ name string }

func open(nav *mvvm.Navigator) { nav.NavigateToType(&ProfileViewModel{}) }
