// Package cli implements the interactive terminal front end of the
// dashboard.
//
// The App keeps the current path and the navigation intent, routes every
// page change through nav.Resolve and renders the users table from the
// view controller. Commands:
//
//	help                 show available commands
//	login                authenticate (password is read without echo)
//	logout               end the session
//	whoami               show the signed-in user
//	goto <path>          navigate to /, /users, /roles or /login
//	list                 show the users table
//	roles                show the roles and what the viewer may do
//	add                  add a user
//	edit <id>            change a user's role and status
//	delete <id>          remove a user
//	slots                show the stored slots
//	reset                wipe stored state and restore the seed directory
//	exit | quit          leave the program
package cli
