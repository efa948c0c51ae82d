package route

import "github.com/mpyw/mvvm"

type OrdersViewModel struct {
	mvvm.ViewModelBase

	//mvvm:viewParameter
	Filter string
}

type OrdersView struct { // want "route parameter orderId of view OrdersView is not bound to a parameter"
	mvvm.View[*OrdersViewModel]
}
