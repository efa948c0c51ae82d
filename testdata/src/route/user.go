package route

import "github.com/mpyw/mvvm"

type UserViewModel struct {
	mvvm.ViewModelBase

	//mvvm:viewParameter
	ID string

	//mvvm:viewParameter
	Tab string // want "view parameter Tab of UserViewModel is not supplied by the route of its view"
}

//mvvm:page "/users/{id:int}/{section?}" // want "route parameter section of view UserView is not bound to a parameter"
type UserView struct {
	mvvm.View[*UserViewModel]
}
