/*
Package output writes generation results to their destination.

Three sinks are provided: a line-oriented text sink for terminals and pipes,
a JSON file sink that replaces its target atomically, and a SQLite sink that
appends every run to a results log. Open picks a sink from a destination
string the way the command-line tool does.
*/
package output
