package ignore

import "github.com/mpyw/mvvm"

//mvvmlint:ignore viewmodel-missing-base
type LegacyViewModel struct{}

type QuietViewModel struct{} //mvvmlint:ignore - kept for the old screens

//mvvmlint:ignore missing-dispose // want `unused mvvmlint:ignore directive for rule\(s\): missing-dispose`
type PlainViewModel struct{ mvvm.ViewModelBase }

//mvvmlint:ignore // want "unused mvvmlint:ignore directive"
type Plain struct{}
