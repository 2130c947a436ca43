// Package selection implements the row selection state of the task table.
//
// A Controller owns the set of selected task ids and is the single source of
// truth for "is task X selected". Selection is driven by two trigger classes,
// whole-row clicks and checkbox (button) clicks, and each class has its own
// single/multi select policy:
//
//	SingleSelect  the clicked id becomes the only selected id; clicking the
//	              sole selected id again keeps it selected
//	MultiSelect   the clicked id's membership is flipped
//
// With carry-forward enabled (the default) a multi-select click extends
// whatever the other trigger class selected. With carry-forward disabled the
// selection written by the other class is dropped before the click applies.
// The initial selection and select-all are owned by neither class and are
// never dropped this way.
//
// Every mutation invokes the Notifier exactly once, synchronously, after the
// new state has been committed. A Controller is not safe for concurrent use;
// it belongs to the event loop that drives the table.
package selection
