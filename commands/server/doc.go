/*
Package server contains the commands of the barter daemon: writing the
genesis app_state, validating genesis files and running the ABCI server.
*/
package server
