/*
Package app contains the execution host of barter.

BaseApp and StoreApp implement the tendermint ABCI application on top of a
commit store. Host runs transactions in process, one at a time, each on its
own cache of the state. Router and ChainDecorators build the handler stack
shared by both.
*/
package app
