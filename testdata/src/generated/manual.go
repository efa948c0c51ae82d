package generated

type ManualViewModel struct{} // want "view-model ManualViewModel must embed mvvm.ViewModelBase"
