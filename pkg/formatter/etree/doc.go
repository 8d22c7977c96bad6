// Package etree reads and writes legacy .xptv project files.
//
// # Document Format
//
// A project file is an XML element tree rooted at <pitivi formatter="etree"
// version="0.1">. The factories section lists source factories with their
// input and output streams; the timeline section lists tracks, each
// embedding its stream and its track objects, followed by timeline objects:
//
//	<pitivi formatter="etree" version="0.1">
//	  <factories>
//	    <sources>
//	      <source id="0" type="pitivi.factories.file.FileSourceFactory" filename="file:///tmp/a.ogg">
//	        <input-streams></input-streams>
//	        <output-streams>
//	          <stream id="1" type="pitivi.stream.AudioStream" caps="audio/x-raw-int"></stream>
//	        </output-streams>
//	      </source>
//	    </sources>
//	  </factories>
//	  <timeline>
//	    <tracks>
//	      <track>
//	        <stream id="2" type="pitivi.stream.AudioStream" caps="audio/x-raw-int"></stream>
//	        <track-objects>
//	          <track-object id="3" type="pitivi.timeline.track.SourceTrackObject" start="(gint64)0" ...>
//	            <factory-ref id="0"></factory-ref>
//	            <stream-ref id="1"></stream-ref>
//	          </track-object>
//	        </track-objects>
//	      </track>
//	    </tracks>
//	    <timeline-objects>
//	      <timeline-object>
//	        <factory-ref id="0"></factory-ref>
//	        <track-object-refs>
//	          <track-object-ref id="3"></track-object-ref>
//	        </track-object-refs>
//	      </timeline-object>
//	    </timeline-objects>
//	  </timeline>
//	</pitivi>
//
// Ids come from one counter shared by streams, factories and track objects,
// so they are unique across the whole document. Reference elements
// (factory-ref, stream-ref, track-object-ref) name an id defined earlier in
// the document. A track's default object is never written; loading a track
// recreates it.
//
// # Errors
//
// Load failures carry codes from package errors: STRUCTURAL,
// UNKNOWN_TYPE, MALFORMED_CAPS, MALFORMED_VALUE, DANGLING_REFERENCE and
// UNKNOWN_PROPERTY. Any error aborts the load and leaves the target
// project unchanged.
package etree
