package diag

// Default holds every built-in descriptor.
var Default = NewCatalog()

// Built-in descriptors.
var (
	ViewModelMissingBase = Default.Add(&Descriptor{
		ID:       "viewmodel-missing-base",
		Category: CategoryDesign,
		Severity: SeverityWarning,
		Template: "view-model {0} must embed mvvm.ViewModelBase",
		Doc:      "view-model types must embed a framework base or carry //mvvm:ObservableObject",
	})

	MethodShouldBeCommand = Default.Add(&Descriptor{
		ID:       "method-should-be-command",
		Category: CategoryDesign,
		Severity: SeverityWarning,
		Template: "method {0} should be a command",
		Doc:      "exported void-like view-model methods should be exposed as relay commands",
	})

	MissingDispose = Default.Add(&Descriptor{
		ID:       "missing-dispose",
		Category: CategoryReliability,
		Severity: SeverityWarning,
		Template: "{0} holds disposable resources but does not implement Close",
		Doc:      "types owning closers or subscriptions must implement Close",
	})

	MissingNotifyFor = Default.Add(&Descriptor{
		ID:       "missing-notify-for",
		Category: CategoryDesign,
		Severity: SeverityWarning,
		Template: "{0} should notify dependent property {1}",
		Doc:      "observable state read by a computed property must notify that property",
	})

	ObservableFieldExported = Default.Add(&Descriptor{
		ID:       "observable-field-exported",
		Category: CategoryDesign,
		Severity: SeverityWarning,
		Template: "observable field {0} must be unexported",
		Doc:      "//mvvm:observable fields back a generated property and must stay unexported",
	})

	SetterNotNotifying = Default.Add(&Descriptor{
		ID:       "setter-not-notifying",
		Category: CategoryDesign,
		Severity: SeverityInfo,
		Template: "setter of property {0} does not raise change notification",
		Doc:      "view-model setters should call SetProperty or OnPropertyChanged",
	})

	UnusedViewModelKey = Default.Add(&Descriptor{
		ID:       "unused-viewmodel-key",
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Template: "view-model key {0} is never navigated to",
		Doc:      "declared navigation keys should be used by at least one call site",
	})

	NavigationUnknownKey = Default.Add(&Descriptor{
		ID:       "navigation-unknown-key",
		Category: CategoryUsage,
		Severity: SeverityError,
		Template: "navigation key {0} is not declared by any view-model",
		Doc:      "navigation by key must reference a declared //mvvm:key",
	})

	NavigationUnknownTarget = Default.Add(&Descriptor{
		ID:       "navigation-unknown-target",
		Category: CategoryUsage,
		Severity: SeverityError,
		Template: "navigation target {0} is not a routable view-model",
		Doc:      "navigation by type must target a view-model that has a view",
	})

	DuplicateViewModelKey = Default.Add(&Descriptor{
		ID:       "duplicate-viewmodel-key",
		Category: CategoryUsage,
		Severity: SeverityError,
		Template: "view-model key {0} is declared by both {1} and {2}",
		Doc:      "navigation keys must be unique",
	})

	RouteParameterUnbound = Default.Add(&Descriptor{
		ID:       "route-parameter-unbound",
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Template: "route parameter {0} of view {1} is not bound to a parameter",
		Doc:      "every route template segment must bind to a view or view-model parameter",
	})

	ViewParameterUnbound = Default.Add(&Descriptor{
		ID:       "view-parameter-unbound",
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Template: "view parameter {0} of {1} is not supplied by the route of its view",
		Doc:      "//mvvm:viewparameter fields must be fed by the view's route or parameters",
	})

	MessengerMissingUnregister = Default.Add(&Descriptor{
		ID:       "messenger-missing-unregister",
		Category: CategoryReliability,
		Severity: SeverityWarning,
		Template: "{0} registers messenger recipients but never unregisters them",
		Doc:      "messenger registrations must be undone to avoid leaking recipients",
	})

	StateRefreshInLoop = Default.Add(&Descriptor{
		ID:       "state-refresh-in-loop",
		Category: CategoryPerformance,
		Severity: SeverityWarning,
		Template: "{0} called inside a loop",
		Doc:      "refresh view state once after the loop instead of on every iteration",
	})

	StateRefreshOveruse = Default.Add(&Descriptor{
		ID:       "state-refresh-overuse",
		Category: CategoryPerformance,
		Severity: SeverityInfo,
		Template: "{0} calls state refresh {1} times",
		Doc:      "functions should not refresh view state repeatedly",
	})

	UnusedIgnore = Default.Add(&Descriptor{
		ID:       "unused-ignore",
		Category: CategoryUsage,
		Severity: SeverityWarning,
		Template: "unused mvvmlint:ignore directive{0}",
		Doc:      "ignore directives that suppress nothing",
	})
)
