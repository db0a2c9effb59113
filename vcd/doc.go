/*
Package vcd implements reading and writing of Value Change Dump files as
described in IEEE 1364.

Only the subset needed to replay and record single bit signals is modeled:
header declarations (date, version, comment, timescale, scopes and variables),
timestamps and scalar value changes. Vector changes and dump control keywords
are tolerated by the Parser and skipped.

A VCD file looks like this:

	$timescale 1 ns $end
	$scope module logic $end
	$var wire 1 ! data $end
	$upscope $end
	$enddefinitions $end
	#0
	0!
	#100
	1!

*/
package vcd
